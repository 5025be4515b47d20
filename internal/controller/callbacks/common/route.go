package common

import (
	"net/url"
	"strconv"
	"strings"
)

// RouteFunc обработчик экрана
type RouteFunc func(hc *HandlerContext, p Params)

// Registrar регистрирует экраны по шаблону пути ("/admin/clinics/:id/delete")
type Registrar interface {
	Handle(pattern string, fn RouteFunc)
}

// Params параметры пути и query
type Params struct {
	Path  string
	Vars  map[string]string
	Query url.Values
}

// String параметр пути
func (p Params) String(name string) string {
	return p.Vars[name]
}

// Int64 числовой параметр пути
func (p Params) Int64(name string) (int64, error) {
	raw, ok := p.Vars[name]
	if !ok {
		return 0, ErrInvalidFormat
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return id, nil
}

// Int числовой параметр пути
func (p Params) Int(name string) (int, error) {
	id, err := p.Int64(name)
	return int(id), err
}

// QueryString параметр query
func (p Params) QueryString(name string) string {
	if p.Query == nil {
		return ""
	}
	return p.Query.Get(name)
}

// Page номер страницы из ?page=, по умолчанию 0
func (p Params) Page() int {
	page, err := strconv.Atoi(p.QueryString("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// SplitPath разбирает путь на сегменты без пустых
func SplitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
