package browser

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// WaitForLoadState ждет состояния загрузки страницы: load, domcontentloaded или networkidle.
func (b *PlaywrightBrowser) WaitForLoadState(ctx context.Context, state string) error {
	page := b.getPage()
	if page == nil {
		return ErrNotLaunched
	}

	opts := playwright.PageWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: playwright.Float(float64(b.cfg.Timeout.Milliseconds())),
	}

	return page.WaitForLoadState(opts)
}

func loadState(state string) *playwright.LoadState {
	switch strings.ToLower(state) {
	case "domcontentloaded":
		return playwright.LoadStateDomcontentloaded
	case "networkidle":
		return playwright.LoadStateNetworkidle
	default:
		return playwright.LoadStateLoad
	}
}
