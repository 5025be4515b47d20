// Package doctor экраны врача: приёмы, завершение приёма, история, профиль.
package doctor

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	dashboardPath        = "/doctor"
	appointmentsPath     = "/doctor/appointments"
	appointmentsCriteria = "doctor_appointments_criteria"
	statusAll            = "all"
)

// Register регистрирует экраны врача
func Register(r common.Registrar) {
	r.Handle(dashboardPath, HandleDashboard)

	r.Handle(appointmentsPath, HandleAppointments)
	r.Handle("/doctor/appointments/refresh", HandleAppointmentsRefresh)
	r.Handle("/doctor/appointments/status/:status", HandleAppointmentsStatus)
	r.Handle("/doctor/appointments/:id", HandleAppointmentDetails)
	r.Handle("/doctor/appointments/:id/cancel", HandleCancelAsk)
	r.Handle("/doctor/appointments/:id/cancel/confirm", HandleCancelConfirm)
	r.Handle("/doctor/appointments/:id/complete", HandleCompleteStart)
	r.Handle("/doctor/appointments/:id/complete/skip", HandleCompleteSkip)

	r.Handle(historyPath, HandleHistory)
	r.Handle("/doctor/history/keyword", HandleHistoryKeywordStart)
	r.Handle("/doctor/history/status/:status", HandleHistoryStatus)
	r.Handle("/doctor/history/from", HandleHistoryFromStart)
	r.Handle("/doctor/history/to", HandleHistoryToStart)
	r.Handle("/doctor/history/reset", HandleHistoryReset)
	r.Handle("/doctor/history/:id", HandleHistoryDetails)

	r.Handle(profilePath, HandleProfile)
	r.Handle("/doctor/profile/description", HandleDescriptionStart)
	r.Handle("/doctor/profile/degree", HandleDegreeStart)
}

// HandleDashboard главный экран врача
func HandleDashboard(hc *common.HandlerContext, _ common.Params) {
	board, err := common.LoadBoard(hc, service.ViewerDoctor, true)
	if err != nil {
		common.HandleError(hc, err, "load_doctor_appointments", "Không tải được lịch hẹn.")
		return
	}

	today := model.FormatDate(hc.Handler.Schedules.Now())
	hc.Show(BuildDashboard(hc.Session.User.FullName, board.Items(), today))
}

// BuildDashboard сводка на сегодня и меню врача
func BuildDashboard(name string, items []model.Appointment, today string) (string, *models.InlineKeyboardMarkup) {
	todays := search.FilterAppointments(items, search.Criteria{Date: today})
	columns := service.NewBoard(items).Columns(model.AppointmentStatusPending, model.AppointmentStatusConfirmed)

	var b strings.Builder
	fmt.Fprintf(&b, "👨‍⚕️ <b>Trang bác sĩ</b>\n\n👋 %s\n\n", formatting.OrDash(name))
	fmt.Fprintf(&b, "📆 Hôm nay: %d lịch hẹn\n", len(todays))
	fmt.Fprintf(&b, "%s: %d\n", formatting.FormatStatus(model.AppointmentStatusPending), len(columns[model.AppointmentStatusPending]))
	fmt.Fprintf(&b, "%s: %d", formatting.FormatStatus(model.AppointmentStatusConfirmed), len(columns[model.AppointmentStatusConfirmed]))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Lịch hẹn", appointmentsPath)).
		Row(keyboard.Button("🗓 Lịch làm việc", "/doctor/schedule")).
		Row(keyboard.Button("📚 Lịch sử khám", historyPath)).
		Row(keyboard.Button("👤 Hồ sơ bác sĩ", profilePath)).
		AddHomeButton().
		Build()
	return b.String(), kb
}

// HandleAppointments приёмы врача с фильтром статуса
func HandleAppointments(hc *common.HandlerContext, p common.Params) {
	showAppointments(hc, p.Page(), false)
}

// HandleAppointmentsRefresh перечитывает приёмы из backend
func HandleAppointmentsRefresh(hc *common.HandlerContext, _ common.Params) {
	hc.Answer("🔄 Đã cập nhật")
	showAppointments(hc, 0, true)
}

// HandleAppointmentsStatus меняет фильтр статуса
func HandleAppointmentsStatus(hc *common.HandlerContext, p common.Params) {
	status := p.String("status")
	common.UpdateCriteria(hc, appointmentsCriteria, func(c *search.Criteria) {
		if status == statusAll {
			c.Status = ""
			return
		}
		c.Status = status
	})
	showAppointments(hc, 0, false)
}

func showAppointments(hc *common.HandlerContext, page int, reload bool) {
	board, err := common.LoadBoard(hc, service.ViewerDoctor, reload)
	if err != nil {
		common.HandleError(hc, err, "load_doctor_appointments", "Không tải được lịch hẹn.")
		return
	}

	criteria := common.Criteria(hc, appointmentsCriteria)
	hc.Show(BuildAppointmentsScreen(board.Items(), criteria, page))
}

// BuildAppointmentsScreen список приёмов с кнопками статусов
func BuildAppointmentsScreen(items []model.Appointment, criteria search.Criteria, page int) (string, *models.InlineKeyboardMarkup) {
	filtered := search.FilterAppointments(items, criteria)

	header := "Trạng thái: tất cả"
	if criteria.Status != "" {
		header = "Trạng thái: " + formatting.FormatStatus(model.AppointmentStatus(criteria.Status))
	}

	text, kb := workflow.BuildList("📋 <b>Lịch hẹn của bác sĩ</b>", header, filtered, appointmentsPath, appointmentsPath, page)
	kb.Row(
		keyboard.Button("Tất cả", common.Path(appointmentsPath, "status", statusAll)),
		keyboard.Button(formatting.GetAppointmentStatusDisplay(model.AppointmentStatusPending).Emoji, common.Path(appointmentsPath, "status", model.AppointmentStatusPending)),
		keyboard.Button(formatting.GetAppointmentStatusDisplay(model.AppointmentStatusConfirmed).Emoji, common.Path(appointmentsPath, "status", model.AppointmentStatusConfirmed)),
	)
	kb.Row(keyboard.RefreshButton("/doctor/appointments/refresh"))
	kb.AddBackAndHome(dashboardPath)
	return text, kb.Build()
}

// HandleAppointmentDetails карточка приёма
func HandleAppointmentDetails(hc *common.HandlerContext, p common.Params) {
	workflow.ShowDetails(hc, service.ViewerDoctor, p, appointmentsPath, appointmentsPath)
}

// HandleCancelAsk спрашивает подтверждение отмены
func HandleCancelAsk(hc *common.HandlerContext, p common.Params) {
	workflow.AskCancel(hc, service.ViewerDoctor, p, appointmentsPath)
}

// HandleCancelConfirm отменяет приём
func HandleCancelConfirm(hc *common.HandlerContext, p common.Params) {
	workflow.Cancel(hc, service.ViewerDoctor, p, appointmentsPath, appointmentsPath)
}
