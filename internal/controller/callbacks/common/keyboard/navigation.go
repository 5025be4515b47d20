package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// HomePath стартовый экран
const HomePath = "/"

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Quay lại", callbackData)
}

// HomeButton создаёт кнопку "На главную"
func HomeButton() models.InlineKeyboardButton {
	return Button("🏠 Trang chủ", HomePath)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Hủy", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Xác nhận", callbackData)
}

// SkipButton создаёт кнопку "Пропустить"
func SkipButton(callbackData string) models.InlineKeyboardButton {
	return Button("⏭ Bỏ qua", callbackData)
}

// RefreshButton создаёт кнопку "Обновить"
func RefreshButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔄 Làm mới", callbackData)
}

// YesNoButtons создаёт ряд с кнопками Да/Нет
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Có", yesCallback),
			Button("❌ Không", noCallback),
		},
	}
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// BackRow создаёт ряд с кнопкой "Назад"
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddHomeButton добавляет кнопку "На главную" к builder
func (b *Builder) AddHomeButton() *Builder {
	return b.Row(HomeButton())
}

// AddBackAndHome добавляет ряд "Назад" + "На главную"
func (b *Builder) AddBackAndHome(callbackData string) *Builder {
	return b.Row(BackButton(callbackData), HomeButton())
}

// EditButton создаёт кнопку "Редактировать"
func EditButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("✏️ "+text, callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Xóa", callbackData)
}

// AddButton создаёт кнопку "Добавить"
func AddButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("➕ "+text, callbackData)
}
