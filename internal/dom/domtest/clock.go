package domtest

import (
	"context"
	"sync"
	"time"
)

// Clock: виртуальные часы для тестов: Sleep не блокирует, а сдвигает время.
type Clock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

func NewClock() *Clock {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &Clock{start: start, now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

// Advance сдвигает время вперед без ожидания.
func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Elapsed возвращает время, прошедшее с создания часов.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.start)
}
