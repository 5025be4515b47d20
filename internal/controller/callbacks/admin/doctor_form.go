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
	doctorDraftKey = "doctor_draft"
	newDoctorPath  = "/admin/doctors/new"
	newDoctorTitle = "➕ Thêm bác sĩ"
)

// DoctorDraft черновик нового врача.
// UserID не ноль: профиль для существующего пользователя, аккаунт не создаётся.
type DoctorDraft struct {
	UserID int64
	Req    model.DoctorRegistrationRequest
}

// CancelPath куда возвращает отмена
func (d *DoctorDraft) CancelPath() string {
	if d.UserID != 0 {
		return common.Path(usersPath, d.UserID)
	}
	return doctorsPath
}

// ProfileRequest тело POST /admin/doctors для существующего пользователя
func (d *DoctorDraft) ProfileRequest() model.DoctorRequest {
	return model.DoctorRequest{
		UserID:         d.UserID,
		SpecialtyID:    d.Req.SpecialtyID,
		ClinicID:       d.Req.ClinicID,
		FullName:       d.Req.FullName,
		PhoneNumber:    d.Req.PhoneNumber,
		Address:        d.Req.Address,
		Description:    d.Req.Description,
		AcademicDegree: d.Req.AcademicDegree,
		Price:          d.Req.Price,
		Gender:         d.Req.Gender,
		Birthday:       d.Req.Birthday,
	}
}

func loadDoctorDraft(hc *common.HandlerContext, operation string) *DoctorDraft {
	draft, ok := common.Data[*DoctorDraft](hc, doctorDraftKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, operation, "")
		return nil
	}
	return draft
}

// HandleDoctorAddStart начинает регистрацию врача с новым аккаунтом
func HandleDoctorAddStart(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(doctorDraftKey, &DoctorDraft{})
	common.Prompt(hc, state.StateDoctorNewName, newDoctorTitle, "Nhập họ tên bác sĩ:", doctorsPath)
}

// HandleUserDoctorStart создаёт профиль врача для существующего пользователя
func HandleUserDoctorStart(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return
	}

	user, err := hc.Handler.Users.User(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_user", "Không tải được người dùng.")
		return
	}

	hc.SetData(doctorDraftKey, &DoctorDraft{
		UserID: user.ID,
		Req: model.DoctorRegistrationRequest{
			FullName:    user.FullName,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			Address:     user.Address,
			Gender:      user.Gender,
			Birthday:    user.Birthday,
		},
	})
	showNewDoctorSpecialties(hc)
}

// HandleDoctorNewName получает имя врача
func HandleDoctorNewName(hc *common.HandlerContext, text string) {
	draft := loadDoctorDraft(hc, "doctor_new_name")
	if draft == nil {
		return
	}

	name := strings.TrimSpace(text)
	if err := service.ValidateField("fullName", name, "required,min=2,max=255"); err != nil {
		repromptNewDoctor(hc, err, "Nhập họ tên bác sĩ:", draft)
		return
	}

	draft.Req.FullName = name
	common.Prompt(hc, state.StateDoctorNewEmail, newDoctorTitle, "Nhập email đăng nhập của bác sĩ:", doctorsPath)
}

// HandleDoctorNewEmail получает email врача
func HandleDoctorNewEmail(hc *common.HandlerContext, text string) {
	draft := loadDoctorDraft(hc, "doctor_new_email")
	if draft == nil {
		return
	}

	email := strings.TrimSpace(text)
	if err := service.ValidateField("email", email, "required,email"); err != nil {
		repromptNewDoctor(hc, err, "Nhập email đăng nhập của bác sĩ:", draft)
		return
	}

	draft.Req.Email = email
	common.Prompt(hc, state.StateDoctorNewPassword, newDoctorTitle, "Nhập mật khẩu ban đầu (ít nhất 6 ký tự):", doctorsPath)
}

// HandleDoctorNewPassword получает пароль и переходит к выбору специальности
func HandleDoctorNewPassword(hc *common.HandlerContext, text string) {
	hc.DeleteIncoming()

	draft := loadDoctorDraft(hc, "doctor_new_password")
	if draft == nil {
		return
	}

	if err := service.ValidateField("password", text, "required,min=6,max=100"); err != nil {
		repromptNewDoctor(hc, err, "Nhập mật khẩu ban đầu (ít nhất 6 ký tự):", draft)
		return
	}

	draft.Req.Password = text
	hc.EndDialog()
	showNewDoctorSpecialties(hc)
}

func showNewDoctorSpecialties(hc *common.HandlerContext) {
	draft := loadDoctorDraft(hc, "doctor_new_specialties")
	if draft == nil {
		return
	}

	specialties, err := hc.Handler.Directory.Specialties(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_specialties", "Không tải được danh sách chuyên khoa.")
		return
	}
	hc.Show(buildPickScreen(newDoctorTitle, "Chọn chuyên khoa cho "+formatting.Escape(draft.Req.FullName)+":",
		specialtyOptions(specialties, draft.Req.SpecialtyID), common.Path(newDoctorPath, "specialty"), draft.CancelPath()))
}

// HandleDoctorNewSpecialty запоминает специальность и предлагает клинику
func HandleDoctorNewSpecialty(hc *common.HandlerContext, p common.Params) {
	draft := loadDoctorDraft(hc, "doctor_new_specialty")
	if draft == nil {
		return
	}
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "specialty_id", "")
		return
	}
	draft.Req.SpecialtyID = id

	clinics, err := hc.Handler.Directory.Clinics(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_clinics", "Không tải được danh sách phòng khám.")
		return
	}
	hc.Show(buildPickScreen(newDoctorTitle, "Chọn phòng khám làm việc:",
		clinicOptions(clinics, draft.Req.ClinicID), common.Path(newDoctorPath, "clinic"), draft.CancelPath()))
}

// HandleDoctorNewClinic запоминает клинику и запрашивает цену
func HandleDoctorNewClinic(hc *common.HandlerContext, p common.Params) {
	draft := loadDoctorDraft(hc, "doctor_new_clinic")
	if draft == nil {
		return
	}
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "clinic_id", "")
		return
	}
	draft.Req.ClinicID = id

	common.Prompt(hc, state.StateDoctorNewPrice, newDoctorTitle, "Nhập giá khám (VNĐ), ví dụ 300000:", draft.CancelPath())
}

// HandleDoctorNewPrice получает цену и создаёт врача
func HandleDoctorNewPrice(hc *common.HandlerContext, text string) {
	draft := loadDoctorDraft(hc, "doctor_new_price")
	if draft == nil {
		return
	}

	price, err := service.ParsePrice(text)
	if err != nil {
		repromptNewDoctor(hc, err, "Nhập giá khám (VNĐ), ví dụ 300000:", draft)
		return
	}
	draft.Req.Price = price

	var doctor *model.Doctor
	if draft.UserID != 0 {
		doctor, err = hc.Handler.Directory.CreateDoctor(hc.Ctx, draft.ProfileRequest())
	} else {
		doctor, err = hc.Handler.Directory.RegisterDoctor(hc.Ctx, draft.Req)
	}
	if err != nil {
		hc.Handler.Logger.Warn("Failed to create doctor",
			zap.Int64("user_id", draft.UserID),
			zap.Error(err))
		repromptNewDoctor(hc, err, "Nhập giá khám (VNĐ), ví dụ 300000:", draft)
		return
	}

	hc.EndDialog()
	hc.DeleteData(doctorDraftKey)
	hc.Handler.Logger.Info("Doctor created from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("doctor_id", doctor.DoctorID),
		zap.Bool("new_account", draft.UserID == 0))

	hc.Show(BuildDoctorCreatedScreen(doctor))
}

// BuildDoctorCreatedScreen итог создания врача
func BuildDoctorCreatedScreen(doctor *model.Doctor) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("✅ Đã thêm bác sĩ <b>%s</b>.", formatting.Escape(doctor.FullName))
	kb := keyboard.NewBuilder()
	if doctor.DoctorID != 0 {
		kb.Row(keyboard.Button("👨‍⚕️ Xem hồ sơ", common.Path(doctorsPath, doctor.DoctorID)))
	}
	kb.AddBackAndHome(doctorsPath)
	return text, kb.Build()
}

func repromptNewDoctor(hc *common.HandlerContext, err error, prompt string, draft *DoctorDraft) {
	hc.Show(common.BuildPromptScreen(newDoctorTitle,
		formatting.Escape(common.ErrorMessage(err, "Tạo bác sĩ thất bại."))+"\n\n"+prompt, draft.CancelPath()))
}
