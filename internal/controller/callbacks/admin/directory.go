package admin

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	clinicsPath       = "/admin/clinics"
	specialtiesPath   = "/admin/specialties"
	directoryPageSize = 8

	clinicDraftKey    = "clinic_draft"
	specialtyDraftKey = "specialty_draft"
)

// ========================
// Клиники
// ========================

// HandleClinics список клиник
func HandleClinics(hc *common.HandlerContext, p common.Params) {
	clinics, err := hc.Handler.Directory.Clinics(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_clinics", "Không tải được danh sách phòng khám.")
		return
	}
	hc.Show(BuildClinicsScreen(clinics, p.Page()))
}

// BuildClinicsScreen список клиник с кнопками карточки и удаления
func BuildClinicsScreen(clinics []model.Clinic, page int) (string, *models.InlineKeyboardMarkup) {
	pageItems, page, totalPages := common.Paginate(clinics, page, directoryPageSize)

	var b strings.Builder
	b.WriteString("🏥 <b>Phòng khám</b>\n")

	kb := keyboard.NewBuilder()
	if len(clinics) == 0 {
		b.WriteString("\n📭 Chưa có phòng khám nào.")
	}
	for _, c := range pageItems {
		fmt.Fprintf(&b, "\n🏥 <b>%s</b>\n   📍 %s\n", formatting.Escape(c.Name), formatting.OrDash(c.Address))
		kb.Row(
			keyboard.Button("🏥 "+formatting.Truncate(c.Name, 32), common.Path(clinicsPath, c.ID)),
			keyboard.Button("🗑", common.Path(clinicsPath, c.ID, "delete")),
		)
	}
	kb.AddPagination(common.PagePrefix(clinicsPath), page, totalPages)
	kb.Row(keyboard.AddButton("Thêm phòng khám", "/admin/clinics/add"))
	kb.AddBackAndHome(dashboardPath)

	return strings.TrimRight(b.String(), "\n"), kb.Build()
}

// HandleClinicAddStart запрашивает название клиники
func HandleClinicAddStart(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(clinicDraftKey, &model.ClinicRequest{})
	common.Prompt(hc, state.StateClinicName,
		"➕ Thêm phòng khám",
		"Nhập tên phòng khám:",
		clinicsPath)
}

// HandleClinicName получает название и запрашивает адрес
func HandleClinicName(hc *common.HandlerContext, text string) {
	draft, ok := common.Data[*model.ClinicRequest](hc, clinicDraftKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "clinic_name", "")
		return
	}

	name := strings.TrimSpace(text)
	if err := service.ValidateField("name", name, "required,min=2,max=255"); err != nil {
		hc.Show(common.BuildPromptScreen("➕ Thêm phòng khám",
			formatting.Escape(common.ErrorMessage(err, ""))+"\n\nNhập tên phòng khám:", clinicsPath))
		return
	}

	draft.Name = name
	common.Prompt(hc, state.StateClinicAddress,
		"➕ Thêm phòng khám",
		"Nhập địa chỉ phòng khám:",
		clinicsPath)
}

// HandleClinicAddress получает адрес и создаёт клинику
func HandleClinicAddress(hc *common.HandlerContext, text string) {
	draft, ok := common.Data[*model.ClinicRequest](hc, clinicDraftKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "clinic_address", "")
		return
	}

	draft.Address = strings.TrimSpace(text)
	clinic, err := hc.Handler.Directory.CreateClinic(hc.Ctx, *draft)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to create clinic", zap.Error(err))
		hc.Show(common.BuildPromptScreen("➕ Thêm phòng khám",
			formatting.Escape(common.ErrorMessage(err, "Tạo phòng khám thất bại."))+"\n\nNhập địa chỉ phòng khám:", clinicsPath))
		return
	}

	hc.EndDialog()
	hc.DeleteData(clinicDraftKey)
	hc.Handler.Logger.Info("Clinic created from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("clinic_id", clinic.ID))

	text, kb := common.BuildMessageScreen(
		fmt.Sprintf("✅ Đã thêm phòng khám <b>%s</b>.", formatting.Escape(clinic.Name)), clinicsPath)
	hc.Show(text, kb)
}

var clinicFields = []field{
	{Key: "name", Label: "Tên", Prompt: "Nhập tên phòng khám mới:"},
	{Key: "address", Label: "Địa chỉ", Prompt: "Nhập địa chỉ mới:"},
	{Key: "phone", Label: "SĐT", Prompt: "Nhập số điện thoại phòng khám (ví dụ: 0281234567):"},
	{Key: "description", Label: "Mô tả", Prompt: "Nhập mô tả phòng khám:"},
}

// HandleClinicDetails карточка клиники
func HandleClinicDetails(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "clinic_id", "")
		return
	}

	clinic, err := hc.Handler.Directory.Clinic(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_clinic", "Không tìm thấy phòng khám.")
		return
	}
	hc.Show(BuildClinicScreen(*clinic))
}

// BuildClinicScreen карточка клиники с правкой полей
func BuildClinicScreen(c model.Clinic) (string, *models.InlineKeyboardMarkup) {
	base := common.Path(clinicsPath, c.ID)
	kb := keyboard.NewBuilder().
		Grid(fieldButtons(base, clinicFields), 2).
		Row(keyboard.DeleteButton(common.Path(base, "delete"))).
		AddBackAndHome(clinicsPath).
		Build()
	return formatting.FormatClinicInfo(c), kb
}

// HandleClinicEditStart запрашивает новое значение поля клиники
func HandleClinicEditStart(hc *common.HandlerContext, p common.Params) {
	startFieldEdit(hc, p, clinicFields, state.StateClinicEdit, "✏️ Sửa phòng khám", clinicsPath)
}

// ApplyClinicField записывает значение поля в тело запроса
func ApplyClinicField(req *model.ClinicRequest, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "name":
		req.Name = value
	case "address":
		req.Address = value
	case "phone":
		req.PhoneNumber = value
	case "description":
		req.Description = value
	default:
		return common.ErrInvalidFormat
	}
	return nil
}

// HandleClinicEdit сохраняет новое значение поля клиники
func HandleClinicEdit(hc *common.HandlerContext, text string) {
	edit := currentFieldEdit(hc, "clinic_edit")
	if edit == nil {
		return
	}
	back := common.Path(clinicsPath, edit.ID)

	clinic, err := hc.Handler.Directory.Clinic(hc.Ctx, edit.ID)
	if err != nil {
		hc.EndDialog()
		common.HandleError(hc, err, "get_clinic", "Không tìm thấy phòng khám.")
		return
	}

	req := model.NewClinicRequest(*clinic)
	err = ApplyClinicField(&req, edit.Field.Key, text)
	if err == nil {
		clinic, err = hc.Handler.Directory.UpdateClinic(hc.Ctx, edit.ID, req)
	}
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update clinic",
			zap.Int64("clinic_id", edit.ID),
			zap.String("field", edit.Field.Key),
			zap.Error(err))
		hc.Show(common.BuildPromptScreen("✏️ Sửa phòng khám",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật phòng khám thất bại."))+"\n\n"+edit.Field.Prompt, back))
		return
	}

	hc.EndDialog()
	hc.DeleteData(fieldEditKey)
	text, kb := BuildClinicScreen(*clinic)
	hc.Show("✅ Đã cập nhật phòng khám.\n\n"+text, kb)
}

// HandleClinicDeleteAsk спрашивает подтверждение удаления клиники
func HandleClinicDeleteAsk(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "clinic_id", "")
		return
	}

	clinic, err := hc.Handler.Directory.Clinic(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_clinic", "Không tìm thấy phòng khám.")
		return
	}

	question := fmt.Sprintf("🗑 <b>Xóa phòng khám %s?</b>\n\nThao tác này không thể hoàn tác.", formatting.Escape(clinic.Name))
	hc.Show(common.BuildConfirmScreen(question, common.Path(clinicsPath, id, "delete", "confirm"), clinicsPath))
}

// HandleClinicDeleteConfirm удаляет клинику
func HandleClinicDeleteConfirm(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "clinic_id", "")
		return
	}

	if err := hc.Handler.Directory.DeleteClinic(hc.Ctx, id); err != nil {
		common.HandleError(hc, err, "delete_clinic", "Xóa phòng khám thất bại.")
		return
	}

	common.LogAndAnswer(hc, "Clinic deleted from bot", "🗑 Đã xóa phòng khám", zap.Int64("clinic_id", id))
	hc.Navigate(clinicsPath)
}

// ========================
// Специальности
// ========================

// HandleSpecialties список специальностей
func HandleSpecialties(hc *common.HandlerContext, p common.Params) {
	specialties, err := hc.Handler.Directory.Specialties(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_specialties", "Không tải được danh sách chuyên khoa.")
		return
	}
	hc.Show(BuildSpecialtiesScreen(specialties, p.Page()))
}

// BuildSpecialtiesScreen список специальностей с кнопками карточки и удаления
func BuildSpecialtiesScreen(specialties []model.Specialty, page int) (string, *models.InlineKeyboardMarkup) {
	pageItems, page, totalPages := common.Paginate(specialties, page, directoryPageSize)

	var b strings.Builder
	b.WriteString("🏷 <b>Chuyên khoa</b>\n")

	kb := keyboard.NewBuilder()
	if len(specialties) == 0 {
		b.WriteString("\n📭 Chưa có chuyên khoa nào.")
	}
	for _, s := range pageItems {
		fmt.Fprintf(&b, "\n🏷 <b>%s</b>", formatting.Escape(s.Name))
		if s.Description != "" {
			fmt.Fprintf(&b, "\n   %s", formatting.Escape(formatting.Truncate(s.Description, 80)))
		}
		b.WriteString("\n")
		kb.Row(
			keyboard.Button("🏷 "+formatting.Truncate(s.Name, 32), common.Path(specialtiesPath, s.ID)),
			keyboard.Button("🗑", common.Path(specialtiesPath, s.ID, "delete")),
		)
	}
	kb.AddPagination(common.PagePrefix(specialtiesPath), page, totalPages)
	kb.Row(keyboard.AddButton("Thêm chuyên khoa", "/admin/specialties/add"))
	kb.AddBackAndHome(dashboardPath)

	return strings.TrimRight(b.String(), "\n"), kb.Build()
}

// HandleSpecialtyAddStart запрашивает название специальности
func HandleSpecialtyAddStart(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(specialtyDraftKey, &model.SpecialtyRequest{})
	common.Prompt(hc, state.StateSpecialtyName,
		"➕ Thêm chuyên khoa",
		"Nhập tên chuyên khoa:",
		specialtiesPath)
}

// HandleSpecialtyName получает название и запрашивает описание
func HandleSpecialtyName(hc *common.HandlerContext, text string) {
	draft, ok := common.Data[*model.SpecialtyRequest](hc, specialtyDraftKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "specialty_name", "")
		return
	}

	name := strings.TrimSpace(text)
	if err := service.ValidateField("name", name, "required,min=2,max=255"); err != nil {
		hc.Show(common.BuildPromptScreen("➕ Thêm chuyên khoa",
			formatting.Escape(common.ErrorMessage(err, ""))+"\n\nNhập tên chuyên khoa:", specialtiesPath))
		return
	}

	draft.Name = name
	common.Prompt(hc, state.StateSpecialtyDescription,
		"➕ Thêm chuyên khoa",
		"Nhập mô tả hoặc bấm \"Bỏ qua\":",
		specialtiesPath,
		keyboard.SkipButton("/admin/specialties/add/skip"))
}

// HandleSpecialtyDescription получает описание и создаёт специальность
func HandleSpecialtyDescription(hc *common.HandlerContext, text string) {
	createSpecialty(hc, text)
}

// HandleSpecialtyAddSkip создаёт специальность без описания
func HandleSpecialtyAddSkip(hc *common.HandlerContext, _ common.Params) {
	createSpecialty(hc, "")
}

func createSpecialty(hc *common.HandlerContext, description string) {
	draft, ok := common.Data[*model.SpecialtyRequest](hc, specialtyDraftKey)
	if !ok || draft == nil || draft.Name == "" {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "create_specialty", "")
		return
	}

	draft.Description = strings.TrimSpace(description)
	specialty, err := hc.Handler.Directory.CreateSpecialty(hc.Ctx, *draft)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to create specialty", zap.Error(err))
		hc.Show(common.BuildPromptScreen("➕ Thêm chuyên khoa",
			formatting.Escape(common.ErrorMessage(err, "Tạo chuyên khoa thất bại."))+"\n\nNhập mô tả:",
			specialtiesPath, keyboard.SkipButton("/admin/specialties/add/skip")))
		return
	}

	hc.EndDialog()
	hc.DeleteData(specialtyDraftKey)
	hc.Handler.Logger.Info("Specialty created from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("specialty_id", specialty.ID))

	text, kb := common.BuildMessageScreen(
		fmt.Sprintf("✅ Đã thêm chuyên khoa <b>%s</b>.", formatting.Escape(specialty.Name)), specialtiesPath)
	hc.Show(text, kb)
}

var specialtyFields = []field{
	{Key: "name", Label: "Tên", Prompt: "Nhập tên chuyên khoa mới:"},
	{Key: "description", Label: "Mô tả", Prompt: "Nhập mô tả chuyên khoa:"},
}

// HandleSpecialtyDetails карточка специальности
func HandleSpecialtyDetails(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "specialty_id", "")
		return
	}

	specialty, _, err := hc.Handler.Directory.SpecialtyDetails(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_specialty", "Không tìm thấy chuyên khoa.")
		return
	}
	hc.Show(BuildSpecialtyScreen(*specialty))
}

// BuildSpecialtyScreen карточка специальности с правкой полей
func BuildSpecialtyScreen(s model.Specialty) (string, *models.InlineKeyboardMarkup) {
	base := common.Path(specialtiesPath, s.ID)
	kb := keyboard.NewBuilder().
		Grid(fieldButtons(base, specialtyFields), 2).
		Row(keyboard.DeleteButton(common.Path(base, "delete"))).
		AddBackAndHome(specialtiesPath).
		Build()
	return formatting.FormatSpecialtyInfo(s), kb
}

// HandleSpecialtyEditStart запрашивает новое значение поля специальности
func HandleSpecialtyEditStart(hc *common.HandlerContext, p common.Params) {
	startFieldEdit(hc, p, specialtyFields, state.StateSpecialtyEdit, "✏️ Sửa chuyên khoa", specialtiesPath)
}

// ApplySpecialtyField записывает значение поля в тело запроса
func ApplySpecialtyField(req *model.SpecialtyRequest, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "name":
		req.Name = value
	case "description":
		req.Description = value
	default:
		return common.ErrInvalidFormat
	}
	return nil
}

// HandleSpecialtyEdit сохраняет новое значение поля специальности
func HandleSpecialtyEdit(hc *common.HandlerContext, text string) {
	edit := currentFieldEdit(hc, "specialty_edit")
	if edit == nil {
		return
	}
	back := common.Path(specialtiesPath, edit.ID)

	specialty, _, err := hc.Handler.Directory.SpecialtyDetails(hc.Ctx, edit.ID)
	if err != nil {
		hc.EndDialog()
		common.HandleError(hc, err, "get_specialty", "Không tìm thấy chuyên khoa.")
		return
	}

	req := model.NewSpecialtyRequest(*specialty)
	err = ApplySpecialtyField(&req, edit.Field.Key, text)
	if err == nil {
		specialty, err = hc.Handler.Directory.UpdateSpecialty(hc.Ctx, edit.ID, req)
	}
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update specialty",
			zap.Int64("specialty_id", edit.ID),
			zap.String("field", edit.Field.Key),
			zap.Error(err))
		hc.Show(common.BuildPromptScreen("✏️ Sửa chuyên khoa",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật chuyên khoa thất bại."))+"\n\n"+edit.Field.Prompt, back))
		return
	}

	hc.EndDialog()
	hc.DeleteData(fieldEditKey)
	text, kb := BuildSpecialtyScreen(*specialty)
	hc.Show("✅ Đã cập nhật chuyên khoa.\n\n"+text, kb)
}

// HandleSpecialtyDeleteAsk спрашивает подтверждение удаления специальности
func HandleSpecialtyDeleteAsk(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "specialty_id", "")
		return
	}

	specialty, _, err := hc.Handler.Directory.SpecialtyDetails(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_specialty", "Không tìm thấy chuyên khoa.")
		return
	}

	question := fmt.Sprintf("🗑 <b>Xóa chuyên khoa %s?</b>\n\nThao tác này không thể hoàn tác.", formatting.Escape(specialty.Name))
	hc.Show(common.BuildConfirmScreen(question, common.Path(specialtiesPath, id, "delete", "confirm"), specialtiesPath))
}

// HandleSpecialtyDeleteConfirm удаляет специальность
func HandleSpecialtyDeleteConfirm(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "specialty_id", "")
		return
	}

	if err := hc.Handler.Directory.DeleteSpecialty(hc.Ctx, id); err != nil {
		common.HandleError(hc, err, "delete_specialty", "Xóa chuyên khoa thất bại.")
		return
	}

	common.LogAndAnswer(hc, "Specialty deleted from bot", "🗑 Đã xóa chuyên khoa", zap.Int64("specialty_id", id))
	hc.Navigate(specialtiesPath)
}
