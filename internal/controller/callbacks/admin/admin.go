// Package admin экраны администратора: записи и доска статусов, врачи,
// клиники, специальности и пользователи.
package admin

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

const (
	dashboardPath = "/admin"
	statusAll     = "all"
)

// Register регистрирует экраны администратора
func Register(r common.Registrar) {
	r.Handle(dashboardPath, HandleDashboard)

	r.Handle(appointmentsPath, HandleAppointments)
	r.Handle("/admin/appointments/refresh", HandleAppointmentsRefresh)
	r.Handle("/admin/appointments/status/:status", HandleAppointmentsStatus)
	r.Handle("/admin/appointments/keyword", HandleAppointmentsKeywordStart)
	r.Handle("/admin/appointments/date", HandleAppointmentsDateStart)
	r.Handle("/admin/appointments/reset", HandleAppointmentsReset)
	r.Handle("/admin/appointments/:id", HandleAppointmentDetails)
	r.Handle("/admin/appointments/:id/confirm", HandleConfirm)
	r.Handle("/admin/appointments/:id/cancel", HandleCancelAsk)
	r.Handle("/admin/appointments/:id/cancel/confirm", HandleCancelConfirm)
	r.Handle("/admin/appointments/:id/delete", HandleDeleteAsk)
	r.Handle("/admin/appointments/:id/delete/confirm", HandleDeleteConfirm)

	r.Handle(workflowPath, HandleWorkflow)
	r.Handle("/admin/workflow/:status", HandleWorkflowColumn)

	r.Handle(doctorsPath, HandleDoctors)
	r.Handle("/admin/doctors/add", HandleDoctorAddStart)
	r.Handle("/admin/doctors/new/specialty/:id", HandleDoctorNewSpecialty)
	r.Handle("/admin/doctors/new/clinic/:id", HandleDoctorNewClinic)
	r.Handle("/admin/doctors/:id", HandleDoctorDetails)
	r.Handle("/admin/doctors/:id/edit/:field", HandleDoctorEditStart)
	r.Handle("/admin/doctors/:id/specialty", HandleDoctorSpecialtyPick)
	r.Handle("/admin/doctors/:id/specialty/:specialtyId", HandleDoctorSpecialtySet)
	r.Handle("/admin/doctors/:id/clinic", HandleDoctorClinicPick)
	r.Handle("/admin/doctors/:id/clinic/:clinicId", HandleDoctorClinicSet)
	r.Handle("/admin/doctors/:id/delete", HandleDoctorDeleteAsk)
	r.Handle("/admin/doctors/:id/delete/confirm", HandleDoctorDeleteConfirm)

	r.Handle(clinicsPath, HandleClinics)
	r.Handle("/admin/clinics/add", HandleClinicAddStart)
	r.Handle("/admin/clinics/:id", HandleClinicDetails)
	r.Handle("/admin/clinics/:id/edit/:field", HandleClinicEditStart)
	r.Handle("/admin/clinics/:id/delete", HandleClinicDeleteAsk)
	r.Handle("/admin/clinics/:id/delete/confirm", HandleClinicDeleteConfirm)

	r.Handle(specialtiesPath, HandleSpecialties)
	r.Handle("/admin/specialties/add", HandleSpecialtyAddStart)
	r.Handle("/admin/specialties/add/skip", HandleSpecialtyAddSkip)
	r.Handle("/admin/specialties/:id", HandleSpecialtyDetails)
	r.Handle("/admin/specialties/:id/edit/:field", HandleSpecialtyEditStart)
	r.Handle("/admin/specialties/:id/delete", HandleSpecialtyDeleteAsk)
	r.Handle("/admin/specialties/:id/delete/confirm", HandleSpecialtyDeleteConfirm)

	r.Handle(usersPath, HandleUsers)
	r.Handle("/admin/users/role/:role", HandleUsersRole)
	r.Handle("/admin/users/keyword", HandleUsersKeywordStart)
	r.Handle("/admin/users/reset", HandleUsersReset)
	r.Handle("/admin/users/add", HandleUserAddStart)
	r.Handle("/admin/users/new/role/:role", HandleUserNewRole)
	r.Handle("/admin/users/new/save", HandleUserNewSave)
	r.Handle("/admin/users/:id", HandleUserDetails)
	r.Handle("/admin/users/:id/edit/:field", HandleUserEditStart)
	r.Handle("/admin/users/:id/active", HandleUserActiveToggle)
	r.Handle("/admin/users/:id/roles", HandleUserRoles)
	r.Handle("/admin/users/:id/roles/:role", HandleUserRoleToggle)
	r.Handle("/admin/users/:id/permissions", HandleUserPermissions)
	r.Handle("/admin/users/:id/permissions/:index", HandleUserPermissionToggle)
	r.Handle("/admin/users/:id/doctor", HandleUserDoctorStart)
	r.Handle("/admin/users/:id/delete", HandleUserDeleteAsk)
	r.Handle("/admin/users/:id/delete/confirm", HandleUserDeleteConfirm)
}

// HandleDashboard главный экран администратора
func HandleDashboard(hc *common.HandlerContext, _ common.Params) {
	hc.Show(BuildDashboard(hc.Session))
}

// BuildDashboard меню администратора; пользователи только для супер-администратора
func BuildDashboard(s *session.Session) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🛠 <b>Quản trị</b>\n\n👋 %s", formatting.OrDash(s.User.FullName))

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📋 Lịch hẹn", appointmentsPath),
			keyboard.Button("🗂 Quy trình", workflowPath),
		).
		Row(
			keyboard.Button("👨‍⚕️ Bác sĩ", doctorsPath),
			keyboard.Button("🗓 Lịch làm việc", "/admin/schedules"),
		).
		Row(
			keyboard.Button("🏥 Phòng khám", clinicsPath),
			keyboard.Button("🏷 Chuyên khoa", specialtiesPath),
		)
	if s.HasRole(model.RoleSuperAdmin) {
		kb.Row(keyboard.Button("👥 Người dùng", usersPath))
	}
	kb.AddHomeButton()

	return text, kb.Build()
}
