// Package dom описывает дерево элементов консоли, с которым работает публикатор.
// Дерево принадлежит хосту (браузеру): ядро только читает его и отправляет в него события.
package dom

// Scope: поддерево, в котором выполняется поиск по селектору.
// Корень документа является Scope, но не Element.
type Scope interface {
	// QuerySelector возвращает первое совпадение или nil, если совпадений нет.
	QuerySelector(selector string) (Element, error)
	// QuerySelectorAll возвращает все совпадения в порядке отрисовки.
	QuerySelectorAll(selector string) ([]Element, error)
}

// Element: ссылка на узел дерева. Ссылка не владеет узлом и после любого
// взаимодействия может оказаться устаревшей (хост перерисовывает интерфейс).
type Element interface {
	Scope
	DispatchEvent(eventType string, init map[string]any) error
	Click() error
}

// EventMouseDown: тип синтетического события нажатия указателя.
const EventMouseDown = "mousedown"

// NeutralMouseInit возвращает параметры события мыши без модификаторов и координат.
func NeutralMouseInit() map[string]any {
	return map[string]any{
		"bubbles":    true,
		"cancelable": false,
		"detail":     0,
		"screenX":    0,
		"screenY":    0,
		"clientX":    0,
		"clientY":    0,
		"ctrlKey":    false,
		"altKey":     false,
		"shiftKey":   false,
		"metaKey":    false,
		"button":     0,
	}
}
