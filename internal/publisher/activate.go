package publisher

import (
	"fmt"

	"draftPublisher/internal/dom"
)

// Activate повторяет ввод пользователя: синтетический mousedown и сразу за ним click.
// Фреймворк консоли слушает обе фазы, без любой из них клик молча игнорируется.
func Activate(el dom.Element) error {
	if el == nil {
		return ErrMissingElement
	}
	if err := el.DispatchEvent(dom.EventMouseDown, dom.NeutralMouseInit()); err != nil {
		return fmt.Errorf("mousedown: %w", err)
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}
