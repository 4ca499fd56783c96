package publisher

import (
	"fmt"
	"time"

	"draftPublisher/internal/dom"
)

// Selectors: структурная зависимость от текущей разметки консоли.
type Selectors struct {
	Row              string
	EditButton       string
	DraftPanel       string
	VisibilityStep   string
	OptionsContainer string
	Option           string
	Save             string
}

// DefaultSelectors возвращает селекторы YouTube Studio.
func DefaultSelectors() Selectors {
	return Selectors{
		Row:              "ytcp-video-row",
		EditButton:       ".edit-draft-button",
		DraftPanel:       ".style-scope.ytcp-uploads-dialog",
		VisibilityStep:   "#step-badge-3",
		OptionsContainer: "tp-yt-paper-radio-group",
		Option:           "tp-yt-paper-radio-button",
		Save:             "#done-button",
	}
}

func (s Selectors) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"row", s.Row},
		{"edit button", s.EditButton},
		{"draft panel", s.DraftPanel},
		{"visibility step", s.VisibilityStep},
		{"options container", s.OptionsContainer},
		{"option", s.Option},
		{"save", s.Save},
	}
	for _, f := range fields {
		if err := dom.ValidateSelector(f.value); err != nil {
			return fmt.Errorf("селектор %s: %w", f.name, err)
		}
	}
	return nil
}

// Timings собирает все ожидания публикатора в одном месте.
type Timings struct {
	PollInterval   time.Duration // шаг опроса дерева
	AcquireTimeout time.Duration // таймаут поиска элемента по умолчанию
	ProbeTimeout   time.Duration // короткая проверка наличия кнопки редактирования
	PanelSettle    time.Duration // пауза на внутреннюю раскладку открытой панели
	StepSettle     time.Duration // пауза между шагами одного ролика
	SaveSettle     time.Duration // пауза после сохранения, пока список перерисовывается
	ListTimeout    time.Duration // ожидание первой строки списка перед пакетом
}

func DefaultTimings() Timings {
	return Timings{
		PollInterval:   20 * time.Millisecond,
		AcquireTimeout: 10 * time.Second,
		ProbeTimeout:   20 * time.Millisecond,
		PanelSettle:    50 * time.Millisecond,
		StepSettle:     500 * time.Millisecond,
		SaveSettle:     3 * time.Second,
		ListTimeout:    30 * time.Second,
	}
}

// withDefaults подставляет значения по умолчанию вместо нулевых.
// Отрицательная пауза означает "не ждать", отрицательный таймаут дает одну проверку.
func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	for _, f := range []struct {
		v   *time.Duration
		def time.Duration
	}{
		{&t.AcquireTimeout, d.AcquireTimeout},
		{&t.ProbeTimeout, d.ProbeTimeout},
		{&t.ListTimeout, d.ListTimeout},
		{&t.PanelSettle, d.PanelSettle},
		{&t.StepSettle, d.StepSettle},
		{&t.SaveSettle, d.SaveSettle},
	} {
		if *f.v == 0 {
			*f.v = f.def
		}
	}
	for _, v := range []*time.Duration{&t.PanelSettle, &t.StepSettle, &t.SaveSettle} {
		if *v < 0 {
			*v = 0
		}
	}
	return t
}

type Config struct {
	Selectors Selectors
	Timings   Timings
}
