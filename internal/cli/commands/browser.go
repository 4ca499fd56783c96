package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"draftPublisher/internal/cli/ui"
	"draftPublisher/internal/publisher"
)

// BrowserHandler обрабатывает команды браузера. Навигация идет через сессию консоли,
// поэтому во время публикации страница не переоткрывается.
type BrowserHandler struct {
	studio   Studio
	readLine func() (string, error)
	out      io.Writer
}

func NewBrowserHandler(studio Studio, readLine func() (string, error), out io.Writer) *BrowserHandler {
	return &BrowserHandler{
		studio:   studio,
		readLine: readLine,
		out:      out,
	}
}

// OpenPersistent открывает консоль в профиле, где оператор входит в аккаунт вручную
func (h *BrowserHandler) OpenPersistent(ctx context.Context) {
	if h.studio == nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Браузер не инициализирован"+ui.ColorReset)
		return
	}

	ui.Info(h.out, ui.IconGlobe, "Запуск браузера в persistent режиме...")
	if err := h.studio.Open(ctx); err != nil {
		h.failure(err)
		return
	}

	ui.Success(h.out, "Браузер открыт с сохранением сессии")
	fmt.Fprintln(h.out, ui.ColorGray+"Войдите в аккаунт канала, затем используйте '"+ui.ColorYellow+"publish"+ui.ColorGray+"'"+ui.ColorReset)
	fmt.Fprintln(h.out, ui.ColorYellow+"⏎ Нажмите Enter, когда закончите..."+ui.ColorReset)
	h.readLine()
}

// Open открывает URL в браузере
func (h *BrowserHandler) Open(ctx context.Context, url string) {
	if h.studio == nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Браузер не инициализирован"+ui.ColorReset)
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ui.Info(h.out, ui.IconArrow, "Открытие %s...", url)
	if err := h.studio.OpenURL(ctx, url); err != nil {
		h.failure(err)
		return
	}

	ui.Success(h.out, "Страница открыта")
}

func (h *BrowserHandler) failure(err error) {
	if errors.Is(err, publisher.ErrBatchInProgress) {
		fmt.Fprintln(h.out, ui.ColorYellow+ui.IconClock+" Идет публикация, страницу нельзя переоткрыть"+ui.ColorReset)
		return
	}
	ui.Failure(h.out, "Ошибка навигации", err)
}
