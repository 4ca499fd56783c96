package browser

import (
	"fmt"

	"draftPublisher/internal/dom"

	"github.com/playwright-community/playwright-go"
)

// pageScope: документ страницы как dom.Scope.
type pageScope struct {
	page playwright.Page
}

func (s pageScope) QuerySelector(selector string) (dom.Element, error) {
	h, err := s.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return wrap(h), nil
}

func (s pageScope) QuerySelectorAll(selector string) ([]dom.Element, error) {
	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapAll(handles), nil
}

// element: ElementHandle playwright как dom.Element.
type element struct {
	h playwright.ElementHandle
}

// wrap возвращает nil-интерфейс, если элемента нет, чтобы сравнение с nil работало.
func wrap(h playwright.ElementHandle) dom.Element {
	if h == nil {
		return nil
	}
	return element{h: h}
}

func wrapAll(handles []playwright.ElementHandle) []dom.Element {
	out := make([]dom.Element, 0, len(handles))
	for _, h := range handles {
		if h != nil {
			out = append(out, element{h: h})
		}
	}
	return out
}

func (e element) QuerySelector(selector string) (dom.Element, error) {
	h, err := e.h.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return wrap(h), nil
}

func (e element) QuerySelectorAll(selector string) ([]dom.Element, error) {
	handles, err := e.h.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapAll(handles), nil
}

func (e element) DispatchEvent(eventType string, init map[string]any) error {
	return e.h.DispatchEvent(eventType, init)
}

// Click вызывает el.click() в странице. Нажатие playwright не подходит: оно ждет
// видимости и стабильности элемента, а фреймворк консоли ждет именно DOM-активацию.
func (e element) Click() error {
	if _, err := e.h.Evaluate("el => el.click()"); err != nil {
		return fmt.Errorf("el.click(): %w", err)
	}
	return nil
}
