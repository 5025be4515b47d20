package admin

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// fieldEditKey поле карточки, которое ждёт новый текст
const fieldEditKey = "admin_field_edit"

// field текстовое поле карточки
type field struct {
	Key    string
	Label  string
	Prompt string
}

// fieldEdit запись и поле, для которых открыт диалог правки
type fieldEdit struct {
	ID    int64
	Field field
}

func findField(fields []field, key string) (field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return field{}, false
}

// fieldButtons кнопки правки полей: base/edit/<key>
func fieldButtons(base string, fields []field) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(fields))
	for _, f := range fields {
		buttons = append(buttons, keyboard.EditButton(f.Label, common.Path(base, "edit", f.Key)))
	}
	return buttons
}

// startFieldEdit открывает диалог правки поля :field записи :id
func startFieldEdit(hc *common.HandlerContext, p common.Params, fields []field, st state.UserState, title, base string) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "field_edit_id", "")
		return
	}
	f, ok := findField(fields, p.String("field"))
	if !ok {
		common.HandleError(hc, common.ErrInvalidFormat, "field_edit_key", "")
		return
	}

	hc.SetData(fieldEditKey, fieldEdit{ID: id, Field: f})
	common.Prompt(hc, st, title, f.Prompt, common.Path(base, id))
}

// currentFieldEdit открытый диалог правки; nil, если данные потеряны
func currentFieldEdit(hc *common.HandlerContext, operation string) *fieldEdit {
	edit, ok := common.Data[fieldEdit](hc, fieldEditKey)
	if !ok {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, operation, "")
		return nil
	}
	return &edit
}

// option вариант выбора из справочника
type option struct {
	ID       int64
	Name     string
	Selected bool
}

func specialtyOptions(list []model.Specialty, selected int64) []option {
	options := make([]option, 0, len(list))
	for _, s := range list {
		options = append(options, option{ID: s.ID, Name: s.Name, Selected: s.ID == selected})
	}
	return options
}

func clinicOptions(list []model.Clinic, selected int64) []option {
	options := make([]option, 0, len(list))
	for _, c := range list {
		options = append(options, option{ID: c.ID, Name: c.Name, Selected: c.ID == selected})
	}
	return options
}

// buildPickScreen выбор одного варианта: кнопки prefix/<id>
func buildPickScreen(title, hint string, options []option, prefix, back string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("%s\n\n%s", title, hint)
	if len(options) == 0 {
		text += "\n\n📭 Danh sách trống."
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(options))
	for _, o := range options {
		label := formatting.Truncate(o.Name, 30)
		if o.Selected {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.Button(label, common.Path(prefix, o.ID)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 2).
		Row(keyboard.CancelButton(back)).
		Build()
	return text, kb
}
