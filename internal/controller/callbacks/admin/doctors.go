package admin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	doctorsPath     = "/admin/doctors"
	doctorsPageSize = 8
)

// HandleDoctors врачи; ?q= фильтрует по имени, специальности и клинике
func HandleDoctors(hc *common.HandlerContext, p common.Params) {
	criteria := search.Criteria{Keyword: strings.TrimSpace(p.QueryString("q"))}

	doctors, err := hc.Handler.Directory.AdminDoctors(hc.Ctx, criteria)
	if err != nil {
		common.HandleError(hc, err, "admin_doctors", "Không tải được danh sách bác sĩ.")
		return
	}
	hc.Show(BuildDoctorsScreen(doctors, p.Page()))
}

// BuildDoctorsScreen список врачей с кнопками карточек
func BuildDoctorsScreen(doctors []model.Doctor, page int) (string, *models.InlineKeyboardMarkup) {
	pageItems, page, totalPages := common.Paginate(doctors, page, doctorsPageSize)

	var b strings.Builder
	b.WriteString("👨‍⚕️ <b>Quản lý bác sĩ</b>\n")

	kb := keyboard.NewBuilder()
	if len(doctors) == 0 {
		b.WriteString("\n📭 Chưa có bác sĩ nào.")
	} else {
		fmt.Fprintf(&b, "\nTổng cộng: %d\n", len(doctors))
		for _, d := range pageItems {
			b.WriteString("\n")
			b.WriteString(formatting.FormatDoctorShort(d))
			kb.Row(keyboard.Button("👨‍⚕️ "+formatting.Truncate(d.FullName, 40), common.Path(doctorsPath, d.DoctorID)))
		}
	}
	kb.AddPagination(common.PagePrefix(doctorsPath), page, totalPages)
	kb.Row(keyboard.AddButton("Thêm bác sĩ", "/admin/doctors/add"))
	kb.AddBackAndHome(dashboardPath)

	return b.String(), kb.Build()
}

// findDoctor врач из списка администратора
func findDoctor(hc *common.HandlerContext, p common.Params) (model.Doctor, bool) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "doctor_id", "")
		return model.Doctor{}, false
	}

	doctors, err := hc.Handler.Directory.AdminDoctors(hc.Ctx, search.Criteria{})
	if err != nil {
		common.HandleError(hc, err, "admin_doctors", "Không tải được danh sách bác sĩ.")
		return model.Doctor{}, false
	}
	for _, d := range doctors {
		if d.DoctorID == id {
			return d, true
		}
	}
	common.HandleError(hc, common.ErrNotFound, "find_doctor", "")
	return model.Doctor{}, false
}

var doctorFields = []field{
	{Key: "name", Label: "Họ tên", Prompt: "Nhập họ tên bác sĩ:"},
	{Key: "phone", Label: "SĐT", Prompt: "Nhập số điện thoại (ví dụ: 0901234567):"},
	{Key: "address", Label: "Địa chỉ", Prompt: "Nhập địa chỉ:"},
	{Key: "degree", Label: "Học vị", Prompt: "Nhập học vị (ví dụ: Thạc sĩ, Tiến sĩ):"},
	{Key: "description", Label: "Giới thiệu", Prompt: "Nhập phần giới thiệu:"},
	{Key: "price", Label: "Giá khám", Prompt: "Nhập giá khám (VNĐ), ví dụ 300000:"},
}

// HandleDoctorDetails карточка врача
func HandleDoctorDetails(hc *common.HandlerContext, p common.Params) {
	d, ok := findDoctor(hc, p)
	if !ok {
		return
	}
	hc.Show(BuildDoctorScreen(d))
}

// BuildDoctorScreen карточка врача с правкой полей, специальности и клиники
func BuildDoctorScreen(d model.Doctor) (string, *models.InlineKeyboardMarkup) {
	base := common.Path(doctorsPath, d.DoctorID)
	kb := keyboard.NewBuilder().
		Grid(fieldButtons(base, doctorFields), 2).
		Row(
			keyboard.EditButton("Chuyên khoa", common.Path(base, "specialty")),
			keyboard.EditButton("Phòng khám", common.Path(base, "clinic")),
		).
		Row(
			keyboard.Button("🗓 Lịch làm việc", common.Path("admin", "schedules", d.DoctorID)),
			keyboard.DeleteButton(common.Path(base, "delete")),
		).
		AddBackAndHome(doctorsPath).
		Build()
	return formatting.FormatDoctorInfo(d), kb
}

// HandleDoctorEditStart запрашивает новое значение поля врача
func HandleDoctorEditStart(hc *common.HandlerContext, p common.Params) {
	startFieldEdit(hc, p, doctorFields, state.StateDoctorEdit, "✏️ Sửa bác sĩ", doctorsPath)
}

// ApplyDoctorField записывает значение поля в тело запроса
func ApplyDoctorField(req *model.DoctorRequest, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "name":
		req.FullName = value
	case "phone":
		req.PhoneNumber = value
	case "address":
		req.Address = value
	case "degree":
		req.AcademicDegree = value
	case "description":
		req.Description = value
	case "price":
		price, err := service.ParsePrice(value)
		if err != nil {
			return err
		}
		req.Price = price
	default:
		return common.ErrInvalidFormat
	}
	return nil
}

// HandleDoctorEdit сохраняет новое значение поля врача
func HandleDoctorEdit(hc *common.HandlerContext, text string) {
	edit := currentFieldEdit(hc, "doctor_edit")
	if edit == nil {
		return
	}

	err := updateDoctor(hc, edit.ID, func(req *model.DoctorRequest) error {
		return ApplyDoctorField(req, edit.Field.Key, text)
	})
	if err != nil {
		hc.Show(common.BuildPromptScreen("✏️ Sửa bác sĩ",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật bác sĩ thất bại."))+"\n\n"+edit.Field.Prompt,
			common.Path(doctorsPath, edit.ID)))
		return
	}
	hc.EndDialog()
	hc.DeleteData(fieldEditKey)
}

// HandleDoctorSpecialtyPick выбор новой специальности врача
func HandleDoctorSpecialtyPick(hc *common.HandlerContext, p common.Params) {
	d, ok := findDoctor(hc, p)
	if !ok {
		return
	}
	specialties, err := hc.Handler.Directory.Specialties(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_specialties", "Không tải được danh sách chuyên khoa.")
		return
	}

	base := common.Path(doctorsPath, d.DoctorID)
	hc.Show(buildPickScreen("🏷 <b>Chuyên khoa</b>", "Chọn chuyên khoa cho "+formatting.Escape(d.FullName)+":",
		specialtyOptions(specialties, d.SpecialtyID()), common.Path(base, "specialty"), base))
}

// HandleDoctorSpecialtySet сохраняет специальность врача
func HandleDoctorSpecialtySet(hc *common.HandlerContext, p common.Params) {
	pickDoctorRef(hc, p, "specialtyId", func(req *model.DoctorRequest, id int64) { req.SpecialtyID = id })
}

// HandleDoctorClinicPick выбор новой клиники врача
func HandleDoctorClinicPick(hc *common.HandlerContext, p common.Params) {
	d, ok := findDoctor(hc, p)
	if !ok {
		return
	}
	clinics, err := hc.Handler.Directory.Clinics(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_clinics", "Không tải được danh sách phòng khám.")
		return
	}

	base := common.Path(doctorsPath, d.DoctorID)
	hc.Show(buildPickScreen("🏥 <b>Phòng khám</b>", "Chọn phòng khám cho "+formatting.Escape(d.FullName)+":",
		clinicOptions(clinics, d.ClinicID()), common.Path(base, "clinic"), base))
}

// HandleDoctorClinicSet сохраняет клинику врача
func HandleDoctorClinicSet(hc *common.HandlerContext, p common.Params) {
	pickDoctorRef(hc, p, "clinicId", func(req *model.DoctorRequest, id int64) { req.ClinicID = id })
}

func pickDoctorRef(hc *common.HandlerContext, p common.Params, param string, set func(*model.DoctorRequest, int64)) {
	doctorID, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "doctor_id", "")
		return
	}
	refID, err := p.Int64(param)
	if err != nil {
		common.HandleError(hc, err, "doctor_"+param, "")
		return
	}

	err = updateDoctor(hc, doctorID, func(req *model.DoctorRequest) error {
		set(req, refID)
		return nil
	})
	if err != nil {
		common.HandleError(hc, err, "update_doctor", "Cập nhật bác sĩ thất bại.")
	}
}

// updateDoctor перечитывает врача, меняет тело запроса и показывает обновлённую карточку
func updateDoctor(hc *common.HandlerContext, id int64, change func(*model.DoctorRequest) error) error {
	doctors, err := hc.Handler.Directory.AdminDoctors(hc.Ctx, search.Criteria{})
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(doctors, func(d model.Doctor) bool { return d.DoctorID == id })
	if idx < 0 {
		return common.ErrNotFound
	}

	req := model.NewDoctorRequest(doctors[idx])
	if err := change(&req); err != nil {
		return err
	}
	doctor, err := hc.Handler.Directory.UpdateDoctor(hc.Ctx, id, req)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update doctor", zap.Int64("doctor_id", id), zap.Error(err))
		return err
	}
	if doctor.DoctorID == 0 {
		doctor.DoctorID = id
	}

	hc.Handler.Logger.Info("Doctor updated from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("doctor_id", id))
	text, kb := BuildDoctorScreen(*doctor)
	hc.Show("✅ Đã cập nhật bác sĩ.\n\n"+text, kb)
	return nil
}

// HandleDoctorDeleteAsk спрашивает подтверждение удаления врача
func HandleDoctorDeleteAsk(hc *common.HandlerContext, p common.Params) {
	d, ok := findDoctor(hc, p)
	if !ok {
		return
	}

	question := fmt.Sprintf("🗑 <b>Xóa bác sĩ %s?</b>\n\nThao tác này không thể hoàn tác.", formatting.Escape(d.FullName))
	hc.Show(common.BuildConfirmScreen(question,
		common.Path(doctorsPath, d.DoctorID, "delete", "confirm"),
		common.Path(doctorsPath, d.DoctorID)))
}

// HandleDoctorDeleteConfirm удаляет врача
func HandleDoctorDeleteConfirm(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "doctor_id", "")
		return
	}

	if err := hc.Handler.Directory.DeleteDoctor(hc.Ctx, id); err != nil {
		common.HandleError(hc, err, "delete_doctor", "Xóa bác sĩ thất bại.")
		return
	}

	common.LogAndAnswer(hc, "Doctor deleted from bot", "🗑 Đã xóa bác sĩ", zap.Int64("doctor_id", id))
	hc.Navigate(doctorsPath)
}
