package common

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
)

// BuildConfirmScreen экран подтверждения действия
func BuildConfirmScreen(question, confirmPath, cancelPath string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		AddRows(keyboard.YesNoButtons(confirmPath, cancelPath)).
		Build()
	return question, kb
}

// BuildPromptScreen экран ввода текста в диалоге
func BuildPromptScreen(title, prompt, cancelPath string, extra ...models.InlineKeyboardButton) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("<b>%s</b>\n\n%s\n\n<i>Gửi /cancel để hủy.</i>", title, prompt)

	kb := keyboard.NewBuilder()
	if len(extra) > 0 {
		kb.Row(extra...)
	}
	kb.Row(keyboard.CancelButton(cancelPath))
	return text, kb.Build()
}

// BuildMessageScreen сообщение с кнопкой возврата
func BuildMessageScreen(text, backPath string) (string, *models.InlineKeyboardMarkup) {
	return text, keyboard.NewBuilder().AddBackButton(backPath).Build()
}

// BuildEmptyScreen пустой список
func BuildEmptyScreen(title, hint, backPath string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("<b>%s</b>\n\n📭 %s", title, hint)
	return text, keyboard.NewBuilder().AddBackButton(backPath).AddHomeButton().Build()
}

// Prompt начинает шаг диалога и показывает подсказку
func Prompt(hc *HandlerContext, state callbacktypes.UserState, title, prompt, cancelPath string, extra ...models.InlineKeyboardButton) {
	hc.SetState(state)
	text, kb := BuildPromptScreen(title, prompt, cancelPath, extra...)
	hc.Show(text, kb)
}
