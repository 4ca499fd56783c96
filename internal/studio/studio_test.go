package studio

import (
	"context"
	"errors"
	"testing"
	"time"

	"draftPublisher/internal/dom"
	"draftPublisher/internal/dom/domtest"
	"draftPublisher/internal/publisher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBrowser struct {
	tree      *domtest.Tree
	navigated []string
	launched  int
	closed    bool
	navErr    error
}

func (b *fakeBrowser) Launch(context.Context) error {
	b.launched++
	return nil
}

func (b *fakeBrowser) Navigate(_ context.Context, url string) error {
	b.navigated = append(b.navigated, url)
	return b.navErr
}

func (b *fakeBrowser) WaitForLoadState(context.Context, string) error { return nil }

func (b *fakeBrowser) Document() (dom.Scope, error) {
	return b.tree.Root(), nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

// contentList: одна строка-черновик, которую можно провести через всю цепочку.
func contentList() *domtest.Tree {
	return contentListAt(0)
}

// contentListAt: то же, но строка дорисовывается через renderAt после загрузки страницы.
func contentListAt(renderAt time.Duration) *domtest.Tree {
	clock := domtest.NewClock()
	tree := domtest.NewTree(clock)
	sel := publisher.DefaultSelectors()

	row := tree.Root().AddAt(renderAt, "row", sel.Row)
	edit := row.Add("edit", sel.EditButton)
	edit.OnActivate(func(*domtest.Node) {
		panel := tree.Root().Add("panel", sel.DraftPanel)
		panel.Add("stepper", sel.VisibilityStep).OnActivate(func(*domtest.Node) {
			group := panel.Add("group", sel.OptionsContainer)
			for _, name := range []string{"restricted", "link", "public"} {
				group.Add(name, sel.Option).OnActivate(func(*domtest.Node) {})
			}
		})
		panel.Add("done", sel.Save).OnActivate(func(*domtest.Node) {
			panel.Remove()
			edit.Remove()
		})
	})
	return tree
}

func newStudio(br *fakeBrowser) *Studio {
	cfg := publisher.Config{Selectors: publisher.DefaultSelectors(), Timings: publisher.DefaultTimings()}
	return New(br, "https://studio.example/content", cfg, nil, publisher.WithClock(br.tree.Clock()))
}

func TestStudio_OpenAndPublish(t *testing.T) {
	br := &fakeBrowser{tree: contentList()}
	s := newStudio(br)

	require.NoError(t, s.Open(context.Background()))
	n, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityPublic)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"https://studio.example/content"}, br.navigated)

	var activated []string
	for _, e := range br.tree.EventsOf(domtest.EventActivate) {
		activated = append(activated, e.Node)
	}
	assert.Equal(t, []string{"edit", "stepper", "public", "done"}, activated)

	require.NoError(t, s.Close())
	assert.True(t, br.closed)
}

func TestStudio_PublishBeforeOpen(t *testing.T) {
	s := newStudio(&fakeBrowser{tree: contentList()})

	_, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityRestricted)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestStudio_NavigateError(t *testing.T) {
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	s := newStudio(&fakeBrowser{tree: contentList(), navErr: boom})

	err := s.Open(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityRestricted)
	assert.ErrorIs(t, err, ErrNotOpen)
}

type reopenOnDiscovery struct {
	studio  *Studio
	openErr error
}

func (r *reopenOnDiscovery) Discovered(int, int) {
	r.openErr = r.studio.Open(context.Background())
}

func (r *reopenOnDiscovery) Transition(int, publisher.State, publisher.State) {}

func TestStudio_NoReopenDuringBatch(t *testing.T) {
	br := &fakeBrowser{tree: contentList()}
	obs := &reopenOnDiscovery{}
	cfg := publisher.Config{Selectors: publisher.DefaultSelectors(), Timings: publisher.DefaultTimings()}
	s := New(br, "https://studio.example/content", cfg, nil,
		publisher.WithClock(br.tree.Clock()), publisher.WithObserver(obs))
	obs.studio = s

	require.NoError(t, s.Open(context.Background()))
	n, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityRestricted)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, obs.openErr, publisher.ErrBatchInProgress)
	assert.Len(t, br.navigated, 1)
}

func TestStudio_WaitsForListToRender(t *testing.T) {
	br := &fakeBrowser{tree: contentListAt(300 * time.Millisecond)}
	s := newStudio(br)

	require.NoError(t, s.Open(context.Background()))
	n, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityPublic)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.GreaterOrEqual(t, br.tree.Clock().Elapsed(), 300*time.Millisecond)
}

func TestStudio_EmptyListAfterTimeout(t *testing.T) {
	br := &fakeBrowser{tree: contentListAt(time.Hour)}
	s := newStudio(br)

	require.NoError(t, s.Open(context.Background()))
	n, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityPublic)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.GreaterOrEqual(t, br.tree.Clock().Elapsed(), publisher.DefaultTimings().ListTimeout)
}

func TestStudio_EnsureOpenKeepsCurrentPage(t *testing.T) {
	br := &fakeBrowser{tree: contentList()}
	s := newStudio(br)

	require.NoError(t, s.EnsureOpen(context.Background()))
	require.NoError(t, s.OpenURL(context.Background(), "https://studio.example/playlist"))
	require.NoError(t, s.EnsureOpen(context.Background()))

	assert.Equal(t, []string{"https://studio.example/content", "https://studio.example/playlist"}, br.navigated)
}

type openURLOnDiscovery struct {
	studio  *Studio
	openErr error
}

func (r *openURLOnDiscovery) Discovered(int, int) {
	r.openErr = r.studio.OpenURL(context.Background(), "https://example.org")
}

func (r *openURLOnDiscovery) Transition(int, publisher.State, publisher.State) {}

func TestStudio_NoOpenURLDuringBatch(t *testing.T) {
	br := &fakeBrowser{tree: contentList()}
	obs := &openURLOnDiscovery{}
	cfg := publisher.Config{Selectors: publisher.DefaultSelectors(), Timings: publisher.DefaultTimings()}
	s := New(br, "https://studio.example/content", cfg, nil,
		publisher.WithClock(br.tree.Clock()), publisher.WithObserver(obs))
	obs.studio = s

	require.NoError(t, s.EnsureOpen(context.Background()))
	_, err := s.PublishAllEligibleDrafts(context.Background(), publisher.VisibilityRestricted)

	require.NoError(t, err)
	assert.ErrorIs(t, obs.openErr, publisher.ErrBatchInProgress)
	assert.Equal(t, []string{"https://studio.example/content"}, br.navigated)
}
