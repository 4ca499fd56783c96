package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"draftPublisher/internal/cli/ui"
	"draftPublisher/internal/publisher"

	"go.uber.org/zap"
)

// Studio: сессия консоли, в которой публикуются черновики.
type Studio interface {
	Open(ctx context.Context) error
	OpenURL(ctx context.Context, url string) error
	EnsureOpen(ctx context.Context) error
	PublishAllEligibleDrafts(ctx context.Context, v publisher.Visibility) (int, error)
}

// PublishHandler обрабатывает команду publish
type PublishHandler struct {
	studio     Studio
	visibility publisher.Visibility
	out        io.Writer
	log        *zap.Logger
}

func NewPublishHandler(studio Studio, visibility publisher.Visibility, out io.Writer, log *zap.Logger) *PublishHandler {
	return &PublishHandler{studio: studio, visibility: visibility, out: out, log: log}
}

// Publish публикует все черновики на открытой странице консоли. Если консоль еще не
// открыта, открывает список контента. Без аргумента используется видимость из конфигурации.
func (h *PublishHandler) Publish(ctx context.Context, arg string) {
	if h.studio == nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Браузер не инициализирован"+ui.ColorReset)
		return
	}

	v := h.visibility
	if arg = strings.TrimSpace(arg); arg != "" {
		parsed, err := publisher.ParseVisibility(arg)
		if err != nil {
			ui.Failure(h.out, "Неверная видимость", err)
			return
		}
		v = parsed
	}

	if err := h.studio.EnsureOpen(ctx); errors.Is(err, publisher.ErrBatchInProgress) {
		h.report(0, err)
		return
	} else if err != nil {
		ui.Failure(h.out, "Ошибка открытия консоли", err)
		return
	}

	ui.Info(h.out, ui.IconPlay, "Публикация черновиков с видимостью %s...", v)
	n, err := h.studio.PublishAllEligibleDrafts(ctx, v)
	h.report(n, err)
}

func (h *PublishHandler) report(n int, err error) {
	var abort *publisher.AbortError
	switch {
	case err == nil:
		ui.Success(h.out, "Опубликовано: %d", n)
	case errors.Is(err, publisher.ErrBatchInProgress):
		fmt.Fprintln(h.out, ui.ColorYellow+ui.IconClock+" Публикация уже идет, дождитесь окончания"+ui.ColorReset)
	case errors.As(err, &abort):
		icon, color, text := ui.FormatState(abort.State)
		ui.Failure(h.out, "Публикация прервана", abort.Err)
		fmt.Fprintf(h.out, "  "+ui.ColorGray+"└─"+ui.ColorReset+" ролик #%d: %s%s %s"+ui.ColorReset+", опубликовано до него: %d\n",
			abort.Item+1, color, icon, text, abort.Completed)
	default:
		h.log.Error("Ошибка публикации", zap.Error(err))
		ui.Failure(h.out, "Ошибка публикации", err)
	}
}
