// Package search содержит нормализацию текста и клиентскую фильтрацию списков.
package search

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Диапазон Combining Diacritical Marks, который остаётся после NFD разложения
const (
	combiningFirst = '\u0300'
	combiningLast  = '\u036f'
)

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

func isCombiningMark(r rune) bool {
	return r >= combiningFirst && r <= combiningLast
}

// RemoveAccents убирает вьетнамские диакритики: "Nguyễn Đức" -> "Nguyen Duc"
func RemoveAccents(s string) string {
	// transform.Chain хранит состояние, поэтому собираем цепочку на каждый вызов
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return dStroke.Replace(out)
}

// Normalize приводит строку к нижнему регистру без диакритик
func Normalize(s string) string {
	return strings.ToLower(RemoveAccents(strings.ToLower(s)))
}
