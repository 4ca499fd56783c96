package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"draftPublisher/internal/cli/ui"
	"draftPublisher/internal/youtube"
)

// ErrCancelled: оператор отказался от ввода.
var ErrCancelled = errors.New("ввод отменен")

// Library: загрузка и переименование роликов перед публикацией.
type Library interface {
	UploadDirectory(ctx context.Context, dir string, module int) (youtube.UploadReport, error)
	RenameAndCollect(ctx context.Context, module int) (int, error)
}

// LibraryProvider создает библиотеку при первом обращении: авторизация может
// потребовать ввода кода, поэтому ей передается prompter консоли.
type LibraryProvider func(ctx context.Context, prompt youtube.Prompter) (Library, error)

// LibraryHandler обрабатывает команды upload и rename
type LibraryHandler struct {
	provide LibraryProvider
	library Library
	prompt  youtube.Prompter
	dir     string
	out     io.Writer
}

func NewLibraryHandler(provide LibraryProvider, prompt youtube.Prompter, dir string, out io.Writer) *LibraryHandler {
	return &LibraryHandler{provide: provide, prompt: prompt, dir: dir, out: out}
}

func (h *LibraryHandler) get(ctx context.Context) (Library, error) {
	if h.library != nil {
		return h.library, nil
	}
	if h.provide == nil {
		return nil, errors.New("YouTube API не настроен")
	}
	lib, err := h.provide(ctx, h.prompt)
	if err != nil {
		return nil, err
	}
	h.library = lib
	return lib, nil
}

// AskModuleNumber спрашивает номер модуля, пока не получит целое число.
// "exit" или ошибка ввода прерывают цикл.
func AskModuleNumber(ctx context.Context, prompt youtube.Prompter, out io.Writer) (int, error) {
	for {
		answer, err := prompt.Ask(ctx, ui.ColorYellow+"Введите номер модуля: "+ui.ColorReset)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(answer) == "exit" {
			return 0, ErrCancelled
		}
		module, err := youtube.ParseModule(answer)
		if err == nil {
			return module, nil
		}
		fmt.Fprintln(out, ui.ColorBlue+"Номер модуля должен быть целым числом, попробуйте еще раз"+ui.ColorReset)
	}
}

// Upload загружает ролики модуля из каталога
func (h *LibraryHandler) Upload(ctx context.Context) {
	lib, err := h.get(ctx)
	if err != nil {
		ui.Failure(h.out, "Ошибка авторизации", err)
		return
	}
	module, err := AskModuleNumber(ctx, h.prompt, h.out)
	if err != nil {
		ui.Failure(h.out, "Загрузка отменена", err)
		return
	}

	ui.Info(h.out, ui.IconUpload, "Загрузка роликов из %s...", h.dir)
	report, err := lib.UploadDirectory(ctx, h.dir, module)
	if err != nil {
		ui.Failure(h.out, fmt.Sprintf("Ошибка загрузки (загружено %d)", report.Uploaded), err)
		return
	}
	ui.Success(h.out, "Загружено: %d, пропущено: %d", report.Uploaded, report.Skipped)
	if report.Collected > 0 {
		ui.Info(h.out, ui.IconArrow, "Добавлено в плейлист после прошлого сбоя: %d", report.Collected)
	}
}

// Rename переименовывает загруженные ролики и добавляет их в плейлист
func (h *LibraryHandler) Rename(ctx context.Context) {
	lib, err := h.get(ctx)
	if err != nil {
		ui.Failure(h.out, "Ошибка авторизации", err)
		return
	}
	module, err := AskModuleNumber(ctx, h.prompt, h.out)
	if err != nil {
		ui.Failure(h.out, "Переименование отменено", err)
		return
	}

	ui.Info(h.out, ui.IconLoop, "Переименование роликов модуля %d...", module)
	n, err := lib.RenameAndCollect(ctx, module)
	if err != nil {
		ui.Failure(h.out, fmt.Sprintf("Ошибка переименования (готово %d)", n), err)
		return
	}
	if n == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Нет роликов для переименования"+ui.ColorReset)
		return
	}
	ui.Success(h.out, "Переименовано: %d", n)
}
