package publisher

import (
	"fmt"
	"time"

	"draftPublisher/internal/dom/domtest"
)

// panelDelay: через сколько после клика консоль дорисовывает панель черновика.
const panelDelay = 120 * time.Millisecond

type rowSpec struct {
	draft      bool
	noPanel    bool
	noStepper  bool
	twoOptions bool
}

// studio: список роликов в памяти, ведущий себя как консоль: панель появляется
// асинхронно, шаг видимости дорисовывает группу радиокнопок, сохранение закрывает панель.
type studio struct {
	clock *domtest.Clock
	tree  *domtest.Tree
	sel   Selectors
	rows  []*domtest.Node
}

func newStudio(specs ...rowSpec) *studio {
	clock := domtest.NewClock()
	tree := domtest.NewTree(clock)
	s := &studio{clock: clock, tree: tree, sel: DefaultSelectors()}

	list := tree.Root().Add("list", "ytcp-video-section")
	for i, spec := range specs {
		row := list.Add(fmt.Sprintf("row-%d", i), s.sel.Row)
		s.rows = append(s.rows, row)
		if !spec.draft {
			row.Add(fmt.Sprintf("status-%d", i), ".status")
			continue
		}
		edit := row.Add(fmt.Sprintf("edit-%d", i), s.sel.EditButton)
		edit.OnActivate(func(*domtest.Node) {
			if spec.noPanel {
				return
			}
			s.openPanel(i, spec, edit)
		})
	}
	return s
}

func (s *studio) openPanel(i int, spec rowSpec, edit *domtest.Node) {
	panel := s.tree.Root().AddAt(s.clock.Elapsed()+panelDelay, fmt.Sprintf("panel-%d", i), s.sel.DraftPanel)
	if !spec.noStepper {
		stepper := panel.Add(fmt.Sprintf("stepper-%d", i), s.sel.VisibilityStep)
		stepper.OnActivate(func(*domtest.Node) {
			group := panel.AddAt(s.clock.Elapsed()+30*time.Millisecond, fmt.Sprintf("group-%d", i), s.sel.OptionsContainer)
			options := 3
			if spec.twoOptions {
				options = 2
			}
			for j := 0; j < options; j++ {
				group.Add(fmt.Sprintf("option-%d-%d", i, j), s.sel.Option).OnActivate(func(*domtest.Node) {})
			}
		})
	}
	panel.Add(fmt.Sprintf("done-%d", i), s.sel.Save).OnActivate(func(*domtest.Node) {
		panel.Remove()
		edit.Remove()
	})
}

func (s *studio) publisher(opts ...Option) *Publisher {
	opts = append([]Option{WithClock(s.clock)}, opts...)
	return New(s.tree.Root(), Config{Selectors: s.sel, Timings: DefaultTimings()}, nil, opts...)
}

// activations возвращает узлы, на которых сработали обработчики, с моментами срабатывания.
func (s *studio) activations() map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, e := range s.tree.EventsOf(domtest.EventActivate) {
		out[e.Node] = e.At
	}
	return out
}

type transition struct {
	from, to State
}

type recorder struct {
	rows, eligible int
	transitions    map[int][]transition
	onDiscovered   func()
}

func newRecorder() *recorder {
	return &recorder{transitions: make(map[int][]transition)}
}

func (r *recorder) Discovered(rows, eligible int) {
	r.rows, r.eligible = rows, eligible
	if r.onDiscovered != nil {
		r.onDiscovered()
	}
}

func (r *recorder) Transition(item int, from, to State) {
	r.transitions[item] = append(r.transitions[item], transition{from, to})
}

var fullSequence = []transition{
	{StateClosed, StateDraftOpen},
	{StateDraftOpen, StateVisibilityStep},
	{StateVisibilityStep, StateVisibilitySet},
	{StateVisibilitySet, StateSaved},
}
