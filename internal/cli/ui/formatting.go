package ui

import (
	"fmt"
	"io"

	"draftPublisher/internal/publisher"
)

// FormatState возвращает иконку, цвет и текст для состояния ролика в цепочке публикации
func FormatState(s publisher.State) (icon, color, text string) {
	switch s {
	case publisher.StateSaved:
		return IconCheckmark, ColorGreen, "сохранен"
	case publisher.StateVisibilitySet:
		return IconPlay, ColorCyan, "видимость выбрана"
	case publisher.StateVisibilityStep:
		return IconPlay, ColorCyan, "шаг видимости"
	case publisher.StateDraftOpen:
		return IconClock, ColorYellow, "черновик открыт"
	default:
		return IconClock, ColorYellow, "не открыт"
	}
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorGreen+IconCheckmark+" "+format+ColorReset+"\n", args...)
}

func Failure(w io.Writer, what string, err error) {
	fmt.Fprintf(w, ColorRed+IconCross+" %s:"+ColorReset+" %v\n", what, err)
}

func Info(w io.Writer, icon, format string, args ...any) {
	fmt.Fprintf(w, ColorCyan+icon+" "+format+ColorReset+"\n", args...)
}

// ClearScreen очищает терминал
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
