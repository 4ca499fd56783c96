package youtube

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LocalVideo: файл из каталога загрузки и название, которое он получит.
type LocalVideo struct {
	Path  string
	Title string
}

// ModuleTitle строит название "<модуль>.<номер>": "07" в модуле 3 становится "3.7".
// Снимается только один ведущий ноль.
func ModuleTitle(module int, base string) string {
	return fmt.Sprintf("%d.%s", module, strings.TrimPrefix(base, "0"))
}

// VideoFiles перечисляет обычные файлы каталога в порядке имен.
// Название берется из имени файла до первой точки.
func VideoFiles(dir string, module int) ([]LocalVideo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога %s: %w", dir, err)
	}

	var videos []LocalVideo
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}
		base, _, _ := strings.Cut(name, ".")
		videos = append(videos, LocalVideo{
			Path:  filepath.Join(dir, name),
			Title: ModuleTitle(module, base),
		})
	}
	return videos, nil
}

// FilterRenameSort оставляет ролики с еще не размеченными названиями (без точки),
// переименовывает их в "<модуль>.<номер>" и сортирует по номеру.
// Названия без числа после префикса уходят в конец в исходном порядке.
func FilterRenameSort(videos []PlaylistVideo, module int) []PlaylistVideo {
	var out []PlaylistVideo
	for _, v := range videos {
		if v.Title == "" || strings.Contains(v.Title, ".") {
			continue
		}
		v.Title = ModuleTitle(module, v.Title)
		out = append(out, v)
	}

	prefix := strconv.Itoa(module) + "."
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := leadingNumber(strings.TrimPrefix(out[i].Title, prefix))
		b, bok := leadingNumber(strings.TrimPrefix(out[j].Title, prefix))
		switch {
		case aok && bok:
			return a < b
		default:
			return aok && !bok
		}
	})
	return out
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// ParseModule разбирает номер модуля, введенный оператором. Знак отбрасывается.
func ParseModule(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("номер модуля должен быть целым числом: %q", s)
	}
	if n < 0 {
		n = -n
	}
	return n, nil
}
