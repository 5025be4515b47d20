package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Noop callback кнопок-подписей
const Noop = "noop"

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "/admin/clinics?page=")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	// Индикатор страницы
	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		Noop,
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// CalendarPagination листание календаря по месяцам.
// prefix получает сдвиг -1 или 1, title подпись месяца.
func CalendarPagination(prefix, title string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", prefix+"-1"),
		Button("📅 "+title, Noop),
		Button("▶️", prefix+"1"),
	}
}
