// Package public экраны, доступные без входа: главная, поиск врачей, специальности.
package public

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

// Register регистрирует публичные экраны
func Register(r common.Registrar) {
	r.Handle("/", HandleHome)
	r.Handle("/help", HandleHelp)

	r.Handle("/find-doctor", HandleFindDoctor)
	r.Handle("/find-doctor/keyword", HandleFindDoctorKeywordStart)
	r.Handle("/find-doctor/reset", HandleFindDoctorReset)
	r.Handle("/find-doctor/specialty", HandleFindDoctorSpecialties)
	r.Handle("/find-doctor/specialty/:id", HandleFindDoctorSetSpecialty)
	r.Handle("/find-doctor/clinic", HandleFindDoctorClinics)
	r.Handle("/find-doctor/clinic/:id", HandleFindDoctorSetClinic)
	r.Handle("/doctors/:id", HandleDoctorDetails)

	r.Handle("/specialties", HandleSpecialties)
	r.Handle("/specialty/:id", HandleSpecialtyDetails)
}

// HandleHome главный экран
func HandleHome(hc *common.HandlerContext, _ common.Params) {
	text, kb := BuildHomeScreen(hc.Session)
	hc.Show(text, kb)
}

// BuildHomeScreen главный экран: меню зависит от ролей сессии
func BuildHomeScreen(s *session.Session) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	var text string
	if s == nil {
		text = "🏥 <b>Đặt lịch khám bệnh</b>\n\n" +
			"Tìm bác sĩ, xem lịch trống và đặt lịch khám ngay trong Telegram.\n\n" +
			"Đăng nhập để đặt lịch và quản lý lịch hẹn của bạn."
	} else {
		text = fmt.Sprintf("🏥 <b>Đặt lịch khám bệnh</b>\n\n👋 Xin chào, <b>%s</b>!", formatting.OrDash(s.User.FullName))
	}

	if s != nil {
		if s.HasAnyRole(model.RoleAdmin, model.RoleSuperAdmin) {
			kb.Row(keyboard.Button("🛠 Quản trị", "/admin"))
		}
		if s.HasRole(model.RoleDoctor) {
			kb.Row(keyboard.Button("👨‍⚕️ Trang bác sĩ", "/doctor"))
		}
		if s.HasRole(model.RolePatient) {
			kb.Row(keyboard.Button("📋 Lịch hẹn của tôi", "/patient/appointments"))
		}
	}

	kb.Row(
		keyboard.Button("🔍 Tìm bác sĩ", "/find-doctor"),
		keyboard.Button("🏷 Chuyên khoa", "/specialties"),
	)

	if s == nil {
		kb.Row(
			keyboard.Button("🔑 Đăng nhập", "/login"),
			keyboard.Button("📝 Đăng ký", "/register"),
		)
	} else {
		kb.Row(keyboard.Button("🚪 Đăng xuất", "/logout"))
	}
	kb.Row(keyboard.Button("❓ Trợ giúp", "/help"))

	return text, kb.Build()
}

// HandleHelp справка по командам
func HandleHelp(hc *common.HandlerContext, _ common.Params) {
	text := "❓ <b>Trợ giúp</b>\n\n" +
		"/start — Trang chủ\n" +
		"/find — Tìm bác sĩ\n" +
		"/me — Trang của tôi\n" +
		"/login — Đăng nhập\n" +
		"/register — Đăng ký tài khoản\n" +
		"/logout — Đăng xuất\n" +
		"/cancel — Hủy thao tác đang nhập\n\n" +
		"Bệnh nhân: tìm bác sĩ → chọn ngày → chọn giờ → nhập lý do → thanh toán.\n" +
		"Bác sĩ: đăng ký lịch làm việc, xác nhận hoàn thành lịch khám.\n" +
		"Quản trị: duyệt lịch hẹn, quản lý phòng khám, chuyên khoa, bác sĩ và người dùng."
	hc.Show(common.BuildMessageScreen(text, "/"))
}
