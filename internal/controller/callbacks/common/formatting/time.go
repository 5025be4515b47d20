package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// DisplayDateLayout формат дат на экранах
const DisplayDateLayout = "02/01/2006"

// inputDateLayouts форматы ввода даты в диалогах
var inputDateLayouts = []string{"02/01/2006", "2/1/2006", "02.01.2006", model.DateLayout}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatBackendDate переводит дату backend (YYYY-MM-DD) в экранный вид
func FormatBackendDate(s string) string {
	t, ok := model.ParseDate(s)
	if !ok {
		return s
	}
	return FormatDate(t)
}

// FormatDateWithWeekday форматирует дату с днём недели: "Thứ Ba, 10/06/2025"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s, %s", GetWeekdayName(int(t.Weekday())), FormatDate(t))
}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// ParseDateInput разбирает дату, введённую пользователем, в формат backend
func ParseDateInput(input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, layout := range inputDateLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return model.FormatDate(t), true
		}
	}
	return "", false
}

// GetWeekdayName возвращает название дня недели
func GetWeekdayName(weekday int) string {
	names := []string{
		"Chủ Nhật",
		"Thứ Hai",
		"Thứ Ba",
		"Thứ Tư",
		"Thứ Năm",
		"Thứ Sáu",
		"Thứ Bảy",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetWeekdayShortName возвращает краткое название дня недели
func GetWeekdayShortName(weekday int) string {
	names := []string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца: "Tháng 6/2025"
func GetMonthName(month time.Time) string {
	return fmt.Sprintf("Tháng %d/%d", int(month.Month()), month.Year())
}
