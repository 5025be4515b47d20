package doctor

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
)

const profilePath = "/doctor/profile"

// HandleProfile профиль врача
func HandleProfile(hc *common.HandlerContext, _ common.Params) {
	doctor, err := hc.Handler.Users.DoctorProfile(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "doctor_profile", "Không tải được hồ sơ bác sĩ.")
		return
	}
	hc.Show(BuildProfileScreen(doctor))
}

// BuildProfileScreen карточка врача с кнопками редактирования
func BuildProfileScreen(doctor *model.Doctor) (string, *models.InlineKeyboardMarkup) {
	text := "👤 <b>Hồ sơ bác sĩ</b>\n\n" + formatting.FormatDoctorInfo(*doctor)
	kb := keyboard.NewBuilder().
		Row(
			keyboard.EditButton("📝 Giới thiệu", "/doctor/profile/description"),
			keyboard.EditButton("🎓 Học vị", "/doctor/profile/degree"),
		).
		AddBackAndHome(dashboardPath).
		Build()
	return text, kb
}

// HandleDescriptionStart запрашивает описание
func HandleDescriptionStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateDoctorDescription,
		"📝 Giới thiệu",
		"Nhập phần giới thiệu mới:",
		profilePath)
}

// HandleDegreeStart запрашивает учёную степень
func HandleDegreeStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateDoctorDegree,
		"🎓 Học vị",
		"Nhập học vị (ví dụ: Thạc sĩ, Tiến sĩ):",
		profilePath)
}

// HandleDescription сохраняет описание
func HandleDescription(hc *common.HandlerContext, text string) {
	updateProfile(hc, "description", func(req *model.DoctorSelfUpdateRequest) {
		req.Description = strings.TrimSpace(text)
	})
}

// HandleDegree сохраняет учёную степень
func HandleDegree(hc *common.HandlerContext, text string) {
	updateProfile(hc, "academic_degree", func(req *model.DoctorSelfUpdateRequest) {
		req.AcademicDegree = strings.TrimSpace(text)
	})
}

func updateProfile(hc *common.HandlerContext, field string, change func(*model.DoctorSelfUpdateRequest)) {
	current, err := hc.Handler.Users.DoctorProfile(hc.Ctx)
	if err != nil {
		hc.EndDialog()
		common.HandleError(hc, err, "doctor_profile", "Không tải được hồ sơ bác sĩ.")
		return
	}

	req := model.DoctorSelfUpdateRequest{
		Description:    current.Description,
		AcademicDegree: current.AcademicDegree,
	}
	change(&req)

	doctor, err := hc.Handler.Users.UpdateDoctorProfile(hc.Ctx, req)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update doctor profile",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("field", field),
			zap.Error(err))
		hc.Show(common.BuildPromptScreen("❗️ Chưa lưu được",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật hồ sơ thất bại."))+"\n\nVui lòng nhập lại:",
			profilePath))
		return
	}

	hc.EndDialog()
	text, kb := BuildProfileScreen(doctor)
	hc.Show(fmt.Sprintf("✅ Đã cập nhật hồ sơ.\n\n%s", text), kb)
}
