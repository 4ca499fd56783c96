package publisher

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingElement: попытка активировать элемент, который не был найден.
	ErrMissingElement = errors.New("активация отсутствующего элемента")
	// ErrBatchInProgress: публикация уже выполняется этим публикатором.
	ErrBatchInProgress = errors.New("публикация уже выполняется")
	// ErrWrongKind: функция вызвана с дескриптором другого вида.
	ErrWrongKind = errors.New("дескриптор неподходящего вида")
)

type ErrorType int

const (
	ErrorTypeAcquisitionTimeout ErrorType = iota
	ErrorTypeMissingElement
	ErrorTypeSequenceAbort
	ErrorTypeDriver
)

func (e ErrorType) String() string {
	switch e {
	case ErrorTypeAcquisitionTimeout:
		return "acquisition_timeout"
	case ErrorTypeMissingElement:
		return "activation_on_missing_element"
	case ErrorTypeSequenceAbort:
		return "sequence_abort"
	case ErrorTypeDriver:
		return "driver"
	default:
		return "unknown"
	}
}

// StepError: ошибка одного шага цепочки панели.
type StepError struct {
	Type     ErrorType
	Step     string
	Selector string
	Err      error
}

func (e *StepError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("%s (%s): %v", e.Step, e.Selector, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// AbortError прерывает весь пакет: ролики после Item не трогаются,
// а сам Item может остаться в частично пройденном состоянии State.
type AbortError struct {
	Item      int
	Completed int
	State     State
	Err       error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("публикация прервана на ролике #%d (состояние %s, опубликовано %d): %v",
		e.Item+1, e.State, e.Completed, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

func (e *AbortError) Type() ErrorType {
	return ErrorTypeSequenceAbort
}

func stepError(step, selector string, err error) *StepError {
	t := ErrorTypeDriver
	if errors.Is(err, ErrMissingElement) {
		t = ErrorTypeMissingElement
	}
	return &StepError{Type: t, Step: step, Selector: selector, Err: err}
}
