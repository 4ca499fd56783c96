// Package publisher публикует черновики в консоли, у которой нет массовой публикации.
// Для каждого черновика по очереди проходится цепочка панелей: строка → панель
// черновика → шаг видимости → выбор видимости → сохранение.
package publisher

import (
	"context"
	"fmt"
	"sync"

	"draftPublisher/internal/dom"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State: состояние одного ролика в цепочке публикации.
type State int

const (
	StateClosed State = iota
	StateDraftOpen
	StateVisibilityStep
	StateVisibilitySet
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateDraftOpen:
		return "draft_open"
	case StateVisibilityStep:
		return "visibility_step"
	case StateVisibilitySet:
		return "visibility_set"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Observer получает события прохода. Вызывается из той же горутины, что и публикация.
type Observer interface {
	// Discovered сообщает число строк и черновиков до начала работы.
	Discovered(rows, eligible int)
	// Transition сообщает о переходе ролика item (с нуля) между состояниями.
	Transition(item int, from, to State)
}

type nopObserver struct{}

func (nopObserver) Discovered(int, int)          {}
func (nopObserver) Transition(int, State, State) {}

// Publisher: оркестратор публикации поверх внедренного корня дерева элементов.
type Publisher struct {
	root     dom.Scope
	sel      Selectors
	timings  Timings
	clock    Clock
	poller   *Poller
	log      *zap.Logger
	observer Observer

	// одновременно открыта только одна цепочка панелей
	mu sync.Mutex
}

type Option func(*Publisher)

func WithClock(clock Clock) Option {
	return func(p *Publisher) {
		p.clock = clock
	}
}

func WithObserver(observer Observer) Option {
	return func(p *Publisher) {
		p.observer = observer
	}
}

func New(root dom.Scope, cfg Config, log *zap.Logger, opts ...Option) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Publisher{
		root:     root,
		sel:      cfg.Selectors,
		timings:  cfg.Timings.withDefaults(),
		clock:    realClock{},
		log:      log,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}

	p.poller = NewPoller(root, p.clock, p.timings.PollInterval, log)
	return p
}

// PublishAllEligibleDrafts публикует все черновики, отрисованные на момент вызова,
// с видимостью v. Возвращает число опубликованных роликов. Первая же ошибка шага
// прерывает весь пакет (*AbortError); оставшиеся ролики не трогаются.
func (p *Publisher) PublishAllEligibleDrafts(ctx context.Context, v Visibility) (int, error) {
	if !v.Valid() {
		return 0, fmt.Errorf("недопустимая видимость: %s", v)
	}
	if !p.mu.TryLock() {
		return 0, ErrBatchInProgress
	}
	defer p.mu.Unlock()

	log := p.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.Stringer("visibility", v),
	)

	rows, err := p.Rows()
	if err != nil {
		return 0, err
	}
	eligible := p.Eligible(ctx, rows)

	log.Info("Найдены черновики для публикации",
		zap.Int("rows", len(rows)),
		zap.Int("eligible", len(eligible)))
	p.observer.Discovered(len(rows), len(eligible))

	if len(eligible) == 0 {
		return 0, nil
	}

	if err := p.settle(ctx, p.timings.StepSettle); err != nil {
		return 0, &AbortError{Item: 0, State: StateClosed, Err: err}
	}

	for i, row := range eligible {
		itemLog := log.With(zap.Int("item", i+1))

		state, err := p.publishOne(ctx, itemLog, i, row, v)
		if err != nil {
			completed := i
			if state == StateSaved {
				completed++
			}
			itemLog.Error("Ошибка публикации, пакет прерван",
				zap.Stringer("state", state),
				zap.Int("completed", completed),
				zap.Error(err))
			return completed, &AbortError{Item: i, Completed: completed, State: state, Err: err}
		}

		itemLog.Info("Ролик опубликован")
	}

	log.Info("Публикация завершена", zap.Int("published", len(eligible)))
	return len(eligible), nil
}

// publishOne проводит один ролик через Closed → DraftOpen → VisibilityStep → VisibilitySet → Saved.
// Возвращает последнее достигнутое состояние.
func (p *Publisher) publishOne(ctx context.Context, log *zap.Logger, item int, row Handle, v Visibility) (State, error) {
	state := StateClosed
	advance := func(to State) {
		p.observer.Transition(item, state, to)
		log.Debug("Переход состояния", zap.Stringer("from", state), zap.Stringer("to", to))
		state = to
	}

	draft, err := p.OpenDraft(ctx, row)
	if err != nil {
		return state, err
	}
	if !draft.IsNone() {
		advance(StateDraftOpen)
	}
	if err := p.settle(ctx, p.timings.StepSettle); err != nil {
		return state, err
	}

	vis, err := p.GoToVisibilityStep(ctx, draft)
	if err != nil {
		return state, err
	}
	if !vis.IsNone() {
		advance(StateVisibilityStep)
	}
	if err := p.settle(ctx, p.timings.StepSettle); err != nil {
		return state, err
	}

	if err := p.SetVisibility(ctx, vis, v); err != nil {
		return state, err
	}
	advance(StateVisibilitySet)
	if err := p.settle(ctx, p.timings.StepSettle); err != nil {
		return state, err
	}

	if err := p.Save(ctx, vis); err != nil {
		return state, err
	}
	advance(StateSaved)

	// Панель должна закрыться, а список перерисоваться до следующего ролика
	if err := p.settle(ctx, p.timings.SaveSettle); err != nil {
		return state, err
	}
	return state, nil
}
