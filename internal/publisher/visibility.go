package publisher

import (
	"fmt"
	"strings"
)

// Visibility: уровень доступа публикуемого ролика.
// Порядок значений совпадает с порядком вариантов в панели видимости.
type Visibility int

const (
	VisibilityRestricted Visibility = iota
	VisibilityLinkOnly
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityRestricted:
		return "restricted"
	case VisibilityLinkOnly:
		return "link-only"
	case VisibilityPublic:
		return "public"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// Ordinal возвращает позицию варианта среди отрисованных радиокнопок.
func (v Visibility) Ordinal() int {
	return int(v)
}

func (v Visibility) Valid() bool {
	return v >= VisibilityRestricted && v <= VisibilityPublic
}

// ParseVisibility разбирает значение из конфигурации или командной строки.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "restricted", "private":
		return VisibilityRestricted, nil
	case "link-only", "linkonly", "unlisted":
		return VisibilityLinkOnly, nil
	case "public":
		return VisibilityPublic, nil
	default:
		return 0, fmt.Errorf("неизвестная видимость %q (допустимо: restricted, link-only, public)", s)
	}
}
