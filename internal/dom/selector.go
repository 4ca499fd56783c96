package dom

import (
	"fmt"
	"strings"
)

// ValidateSelector проверяет, что селектор является валидным CSS/Playwright селектором.
// Проверка минимальная: отсекаются только пустые строки и URL.
func ValidateSelector(selector string) error {
	selectorTrimmed := strings.TrimSpace(selector)
	if selectorTrimmed == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}

	// Проверяем, что селектор не является URL
	if strings.HasPrefix(selectorTrimmed, "http://") || strings.HasPrefix(selectorTrimmed, "https://") {
		return fmt.Errorf("селектор не может быть URL. Получен URL: %s", selector)
	}

	// Проверяем, что селектор не начинается с протокола (ftp://, file:// и т.д.)
	if strings.Contains(selectorTrimmed, "://") {
		return fmt.Errorf("селектор не может содержать протокол (://). Получен: %s", selector)
	}

	return nil
}
