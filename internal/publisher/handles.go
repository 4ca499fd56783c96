package publisher

import (
	"context"
	"fmt"
	"time"

	"draftPublisher/internal/dom"

	"go.uber.org/zap"
)

// Kind: вид дескриптора в цепочке строка → черновик → видимость.
type Kind int

const (
	KindRow Kind = iota
	KindDraft
	KindVisibility
)

func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindDraft:
		return "draft"
	case KindVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Handle: неизменяемое значение: вид и корневой элемент поддерева.
// Handle с Root == nil означает "не найдено".
type Handle struct {
	Kind Kind
	Root dom.Element
}

func (h Handle) IsNone() bool {
	return h.Root == nil
}

const (
	stepDiscover      = "discover"
	stepOpenDraft     = "open-draft"
	stepVisibility    = "visibility-step"
	stepSetVisibility = "set-visibility"
	stepSave          = "save"
)

func expect(h Handle, kind Kind, step, parentSelector string) error {
	if h.Kind != kind {
		return &StepError{
			Type: ErrorTypeDriver,
			Step: step,
			Err:  fmt.Errorf("%w: %s, ожидался %s", ErrWrongKind, h.Kind, kind),
		}
	}
	if h.IsNone() {
		return stepError(step, parentSelector, ErrMissingElement)
	}
	return nil
}

// acquire: Poller.Acquire с предупреждением в лог, если элемент так и не появился.
func (p *Publisher) acquire(ctx context.Context, scope dom.Scope, selector string) dom.Element {
	el := p.poller.Acquire(ctx, scope, selector, p.timings.AcquireTimeout)
	if el == nil {
		p.log.Warn("Элемент не найден за отведенное время",
			zap.String("selector", selector),
			zap.Duration("timeout", p.timings.AcquireTimeout))
	}
	return el
}

func (p *Publisher) settle(ctx context.Context, d time.Duration) error {
	return p.clock.Sleep(ctx, d)
}

// WaitForRows ждет, пока в документе появится хотя бы одна строка списка.
// Список консоли отрисовывается после загрузки страницы, поэтому Rows сразу после
// навигации может ничего не найти. Возвращает false, если строк так и не появилось.
func (p *Publisher) WaitForRows(ctx context.Context) bool {
	if p.poller.Acquire(ctx, nil, p.sel.Row, p.timings.ListTimeout) != nil {
		return true
	}
	p.log.Warn("Список роликов не отрисовался, строк: 0",
		zap.String("selector", p.sel.Row),
		zap.Duration("timeout", p.timings.ListTimeout))
	return false
}

// Rows возвращает строки, отрисованные в момент вызова. Строки, добавленные позже,
// в этот проход не попадают.
func (p *Publisher) Rows() ([]Handle, error) {
	els, err := p.root.QuerySelectorAll(p.sel.Row)
	if err != nil {
		return nil, stepError(stepDiscover, p.sel.Row, err)
	}
	rows := make([]Handle, 0, len(els))
	for _, el := range els {
		rows = append(rows, Handle{Kind: KindRow, Root: el})
	}
	return rows, nil
}

// HasEditAffordance: короткая проверка наличия кнопки редактирования.
// Отсутствие кнопки означает, что строка не черновик, и ошибкой не является.
func (p *Publisher) HasEditAffordance(ctx context.Context, row Handle) bool {
	if row.Kind != KindRow || row.IsNone() {
		return false
	}
	return p.poller.Acquire(ctx, row.Root, p.sel.EditButton, p.timings.ProbeTimeout) != nil
}

// Eligible оставляет строки с кнопкой редактирования в порядке отрисовки.
func (p *Publisher) Eligible(ctx context.Context, rows []Handle) []Handle {
	var eligible []Handle
	for _, row := range rows {
		if p.HasEditAffordance(ctx, row) {
			eligible = append(eligible, row)
		}
	}
	return eligible
}

// OpenDraft нажимает кнопку редактирования и ждет панель черновика во всем документе.
// Если панель не появилась, возвращается пустой дескриптор без ошибки.
func (p *Publisher) OpenDraft(ctx context.Context, row Handle) (Handle, error) {
	if err := expect(row, KindRow, stepOpenDraft, p.sel.Row); err != nil {
		return Handle{Kind: KindDraft}, err
	}

	edit := p.poller.Acquire(ctx, row.Root, p.sel.EditButton, p.timings.ProbeTimeout)
	if err := Activate(edit); err != nil {
		return Handle{Kind: KindDraft}, stepError(stepOpenDraft, p.sel.EditButton, err)
	}

	panel := p.acquire(ctx, nil, p.sel.DraftPanel)
	if panel == nil {
		return Handle{Kind: KindDraft}, nil
	}
	return Handle{Kind: KindDraft, Root: panel}, nil
}

// GoToVisibilityStep переводит панель черновика на шаг видимости.
func (p *Publisher) GoToVisibilityStep(ctx context.Context, draft Handle) (Handle, error) {
	if err := expect(draft, KindDraft, stepVisibility, p.sel.DraftPanel); err != nil {
		return Handle{Kind: KindVisibility}, err
	}

	// Даем только что открытой панели закончить собственную раскладку
	if err := p.settle(ctx, p.timings.PanelSettle); err != nil {
		return Handle{Kind: KindVisibility}, stepError(stepVisibility, "", err)
	}

	stepper := p.acquire(ctx, draft.Root, p.sel.VisibilityStep)
	if err := Activate(stepper); err != nil {
		return Handle{Kind: KindVisibility}, stepError(stepVisibility, p.sel.VisibilityStep, err)
	}

	// Шаг видимости живет внутри той же панели
	vis := Handle{Kind: KindVisibility, Root: draft.Root}

	if err := p.settle(ctx, p.timings.PanelSettle); err != nil {
		return Handle{Kind: KindVisibility}, stepError(stepVisibility, "", err)
	}

	if p.acquire(ctx, vis.Root, p.sel.OptionsContainer) == nil {
		return Handle{Kind: KindVisibility}, nil
	}
	return vis, nil
}

// TargetOption возвращает вариант по позиции v.Ordinal() среди отрисованных.
// Подписи вариантов не сверяются: если консоль поменяет порядок, будет выбран другой вариант.
func (p *Publisher) TargetOption(ctx context.Context, vis Handle, v Visibility) (dom.Element, error) {
	if err := expect(vis, KindVisibility, stepSetVisibility, p.sel.OptionsContainer); err != nil {
		return nil, err
	}

	container := p.acquire(ctx, vis.Root, p.sel.OptionsContainer)
	if container == nil {
		return nil, nil
	}

	options, err := container.QuerySelectorAll(p.sel.Option)
	if err != nil {
		return nil, stepError(stepSetVisibility, p.sel.Option, err)
	}

	idx := v.Ordinal()
	if idx < 0 || idx >= len(options) {
		p.log.Warn("Вариант видимости не отрисован",
			zap.Int("index", idx),
			zap.Int("options", len(options)))
		return nil, nil
	}
	return options[idx], nil
}

func (p *Publisher) SetVisibility(ctx context.Context, vis Handle, v Visibility) error {
	option, err := p.TargetOption(ctx, vis, v)
	if err != nil {
		return err
	}
	if err := Activate(option); err != nil {
		return stepError(stepSetVisibility, p.sel.Option, err)
	}
	if err := p.settle(ctx, p.timings.PanelSettle); err != nil {
		return stepError(stepSetVisibility, "", err)
	}
	return nil
}

func (p *Publisher) Save(ctx context.Context, vis Handle) error {
	if err := expect(vis, KindVisibility, stepSave, p.sel.OptionsContainer); err != nil {
		return err
	}
	button := p.acquire(ctx, vis.Root, p.sel.Save)
	if err := Activate(button); err != nil {
		return stepError(stepSave, p.sel.Save, err)
	}
	return nil
}
