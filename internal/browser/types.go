package browser

import (
	"context"
	"sync"
	"time"

	"draftPublisher/internal/dom"

	"github.com/playwright-community/playwright-go"
)

// Browser: сессия браузера, в которой оператор вошел в консоль.
type Browser interface {
	Launch(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	WaitForLoadState(ctx context.Context, state string) error
	// Document возвращает корень дерева элементов текущей страницы.
	Document() (dom.Scope, error)
	Close() error
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config

	mu sync.RWMutex
}

type Config struct {
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
}
