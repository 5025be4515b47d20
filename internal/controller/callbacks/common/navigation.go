package common

import (
	"fmt"
	"net/url"
	"strings"
)

// NoopPath callback кнопок-подписей
const NoopPath = "noop"

// Path собирает путь из сегментов: Path("admin", "clinics", 5, "delete") -> /admin/clinics/5/delete
func Path(segments ...any) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(strings.Trim(fmt.Sprint(segment), "/"))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// WithQuery добавляет query к пути
func WithQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

// PagePath путь страницы списка
func PagePath(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}

// PagePrefix префикс для keyboard.PaginationButtons
func PagePrefix(path string) string {
	return path + "?page="
}

// LoginPath путь входа с возвратом на from
func LoginPath(from string) string {
	if from == "" || from == "/" {
		return "/login"
	}
	return WithQuery("/login", url.Values{"from": {from}})
}
