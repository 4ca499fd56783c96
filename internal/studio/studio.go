// Package studio держит сессию браузера с открытой консолью и запускает в ней публикацию.
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"draftPublisher/internal/browser"
	"draftPublisher/internal/publisher"

	"go.uber.org/zap"
)

var ErrNotOpen = errors.New("консоль не открыта")

type Studio struct {
	br   browser.Browser
	url  string
	cfg  publisher.Config
	opts []publisher.Option
	log  *zap.Logger

	mu  sync.Mutex
	pub *publisher.Publisher

	// пока идет пакет, страницу нельзя переоткрывать
	batch sync.Mutex
}

func New(br browser.Browser, url string, cfg publisher.Config, log *zap.Logger, opts ...publisher.Option) *Studio {
	if log == nil {
		log = zap.NewNop()
	}
	return &Studio{br: br, url: url, cfg: cfg, opts: opts, log: log}
}

// Open запускает браузер, открывает список контента и строит публикатор над документом страницы.
// Во время публикации возвращает publisher.ErrBatchInProgress.
func (s *Studio) Open(ctx context.Context) error {
	return s.OpenURL(ctx, s.url)
}

// OpenURL открывает в сессии консоли произвольную страницу.
func (s *Studio) OpenURL(ctx context.Context, url string) error {
	if !s.batch.TryLock() {
		return publisher.ErrBatchInProgress
	}
	defer s.batch.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open(ctx, url)
}

// EnsureOpen открывает консоль, только если она еще не открыта. Открытую страницу не трогает.
func (s *Studio) EnsureOpen(ctx context.Context) error {
	if !s.batch.TryLock() {
		return publisher.ErrBatchInProgress
	}
	defer s.batch.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pub != nil {
		return nil
	}
	return s.open(ctx, s.url)
}

func (s *Studio) open(ctx context.Context, url string) error {
	if err := s.br.Launch(ctx); err != nil {
		return fmt.Errorf("запуск браузера: %w", err)
	}
	if err := s.br.Navigate(ctx, url); err != nil {
		return fmt.Errorf("переход на %s: %w", url, err)
	}
	if err := s.br.WaitForLoadState(ctx, "load"); err != nil {
		s.log.Warn("Страница консоли загрузилась не полностью", zap.Error(err))
	}

	if s.pub == nil {
		doc, err := s.br.Document()
		if err != nil {
			return err
		}
		s.pub = publisher.New(doc, s.cfg, s.log, s.opts...)
	}

	s.log.Info("Консоль открыта", zap.String("url", url))
	return nil
}

func (s *Studio) publisher() (*publisher.Publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pub == nil {
		return nil, ErrNotOpen
	}
	return s.pub, nil
}

// PublishAllEligibleDrafts дожидается отрисовки списка на открытой странице и публикует
// найденные черновики. Одновременно выполняется не больше одного пакета.
func (s *Studio) PublishAllEligibleDrafts(ctx context.Context, v publisher.Visibility) (int, error) {
	if !s.batch.TryLock() {
		return 0, publisher.ErrBatchInProgress
	}
	defer s.batch.Unlock()

	pub, err := s.publisher()
	if err != nil {
		return 0, err
	}
	pub.WaitForRows(ctx)
	return pub.PublishAllEligibleDrafts(ctx, v)
}

func (s *Studio) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pub = nil
	return s.br.Close()
}
