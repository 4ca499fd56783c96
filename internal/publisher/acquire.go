package publisher

import (
	"context"
	"time"

	"draftPublisher/internal/dom"

	"go.uber.org/zap"
)

// Poller опрашивает дерево элементов до появления совпадения или истечения таймаута.
type Poller struct {
	root     dom.Scope
	clock    Clock
	interval time.Duration
	log      *zap.Logger
}

func NewPoller(root dom.Scope, clock Clock, interval time.Duration, log *zap.Logger) *Poller {
	if clock == nil {
		clock = realClock{}
	}
	if interval <= 0 {
		interval = DefaultTimings().PollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{root: root, clock: clock, interval: interval, log: log}
}

// Acquire ищет selector в scope (nil означает весь документ) каждые interval, пока элемент не
// появится или не пройдет timeout. Возвращает nil, если элемент не найден; ошибок не
// возвращает. При timeout <= 0 выполняется ровно одна проверка.
func (p *Poller) Acquire(ctx context.Context, scope dom.Scope, selector string, timeout time.Duration) dom.Element {
	if scope == nil {
		scope = p.root
	}

	start := p.clock.Now()
	for {
		el, err := scope.QuerySelector(selector)
		if err != nil {
			p.log.Debug("Ошибка проверки селектора, продолжаем опрос", zap.String("selector", selector), zap.Error(err))
		} else if el != nil {
			return el
		}

		elapsed := p.clock.Now().Sub(start)
		if elapsed >= timeout {
			return nil
		}

		wait := min(p.interval, timeout-elapsed)
		if err := p.clock.Sleep(ctx, wait); err != nil {
			return nil
		}
	}
}
