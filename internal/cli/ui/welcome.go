package ui

import (
	"fmt"
	"io"
	"os"
)

// PrintWelcome выводит приветствие и лого
func PrintWelcome(w io.Writer) {
	logoBytes, err := os.ReadFile("logo.txt")
	if err == nil {
		fmt.Fprintln(w, ColorCyan+string(logoBytes)+ColorReset)
	}
	fmt.Fprintln(w, ColorBold+IconUpload+" Draft Publisher v0.1.0"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Массовая публикация черновиков в консоли канала"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Используется: Firefox + YouTube Data API"+ColorReset)
	fmt.Fprintln(w)
	PrintHelp(w)
	fmt.Fprintln(w, ColorCyan+IconBulb+" Совет:"+ColorReset+" Используйте "+ColorYellow+"open-persistent"+ColorReset+" для входа в консоль, затем "+ColorYellow+"publish"+ColorReset+" для публикации черновиков")
	fmt.Fprintln(w)
	fmt.Fprintln(w, ColorGray+"⬆️ ⬇️"+ColorReset+" Используйте стрелки для навигации по истории команд")
	fmt.Fprintln(w)
}

// PrintHelp выводит список доступных команд
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, ColorYellow+IconList+" Доступные команды:"+ColorReset)
	fmt.Fprintln(w, "  "+ColorGreen+"publish"+ColorReset+" [видимость]  - Опубликовать все черновики (restricted, link-only, public)")
	fmt.Fprintln(w, "  "+ColorGreen+"upload"+ColorReset+"               - Загрузить ролики модуля из каталога")
	fmt.Fprintln(w, "  "+ColorGreen+"rename"+ColorReset+"               - Переименовать загруженные ролики и собрать плейлист")
	fmt.Fprintln(w, "  "+ColorGreen+"uploads"+ColorReset+"              - Журнал загрузок")
	fmt.Fprintln(w, "  "+ColorGreen+"open"+ColorReset+" <url>           - Открыть URL в браузере")
	fmt.Fprintln(w, "  "+ColorGreen+"open-persistent"+ColorReset+"      - Открыть браузер для входа в консоль")
	fmt.Fprintln(w, "  "+ColorGreen+"clear"+ColorReset+"                - Очистить экран")
	fmt.Fprintln(w, "  "+ColorGreen+"exit"+ColorReset+"                 - Выход")
	fmt.Fprintln(w)
}
