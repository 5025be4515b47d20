package admin

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	appointmentsPath     = "/admin/appointments"
	appointmentsCriteria = "admin_appointments_criteria"
)

// HandleAppointments все записи с фильтрами
func HandleAppointments(hc *common.HandlerContext, p common.Params) {
	showAppointments(hc, p.Page(), false)
}

// HandleAppointmentsRefresh перечитывает записи из backend
func HandleAppointmentsRefresh(hc *common.HandlerContext, _ common.Params) {
	hc.Answer("🔄 Đã cập nhật")
	showAppointments(hc, 0, true)
}

func showAppointments(hc *common.HandlerContext, page int, reload bool) {
	board, err := common.LoadBoard(hc, service.ViewerAdmin, reload)
	if err != nil {
		common.HandleError(hc, err, "load_admin_appointments", "Không tải được lịch hẹn.")
		return
	}
	hc.Show(BuildAppointmentsScreen(board.Items(), common.Criteria(hc, appointmentsCriteria), page))
}

// BuildAppointmentsScreen список записей с фильтрами статуса, ключевого слова и даты
func BuildAppointmentsScreen(items []model.Appointment, criteria search.Criteria, page int) (string, *models.InlineKeyboardMarkup) {
	filtered := search.FilterAppointments(items, criteria)

	var header strings.Builder
	if criteria.Keyword != "" {
		fmt.Fprintf(&header, "🔎 Từ khóa: <i>%s</i>\n", formatting.Escape(criteria.Keyword))
	}
	if criteria.Status != "" {
		fmt.Fprintf(&header, "Trạng thái: %s\n", formatting.FormatStatus(model.AppointmentStatus(criteria.Status)))
	}
	if criteria.Date != "" {
		fmt.Fprintf(&header, "📆 Ngày: %s\n", formatting.FormatBackendDate(criteria.Date))
	}

	text, kb := workflow.BuildList("📋 <b>Quản lý lịch hẹn</b>", strings.TrimRight(header.String(), "\n"),
		filtered, appointmentsPath, appointmentsPath, page)

	statuses := make([]models.InlineKeyboardButton, 0, len(model.AppointmentStatuses)+1)
	statuses = append(statuses, keyboard.Button("Tất cả", common.Path(appointmentsPath, "status", statusAll)))
	for _, status := range model.AppointmentStatuses {
		statuses = append(statuses, keyboard.Button(
			formatting.GetAppointmentStatusDisplay(status).Emoji,
			common.Path(appointmentsPath, "status", status)))
	}
	kb.Grid(statuses, 4)
	kb.Row(
		keyboard.Button("🔎 Từ khóa", "/admin/appointments/keyword"),
		keyboard.Button("📆 Ngày", "/admin/appointments/date"),
		keyboard.RefreshButton("/admin/appointments/refresh"),
	)
	if !criteria.IsEmpty() {
		kb.Row(keyboard.Button("♻️ Xóa bộ lọc", "/admin/appointments/reset"))
	}
	kb.AddBackAndHome(dashboardPath)
	return text, kb.Build()
}

// HandleAppointmentsStatus фильтр по статусу
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

// HandleAppointmentsReset сбрасывает фильтры
func HandleAppointmentsReset(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(appointmentsCriteria, search.Criteria{})
	hc.Answer("♻️ Đã xóa bộ lọc")
	showAppointments(hc, 0, false)
}

// HandleAppointmentsKeywordStart запрашивает ключевое слово
func HandleAppointmentsKeywordStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateAdminAppointmentsKeyword,
		"🔎 Tìm lịch hẹn",
		"Nhập tên bệnh nhân, bác sĩ, số điện thoại hoặc chẩn đoán:",
		appointmentsPath)
}

// HandleAppointmentsKeyword получает ключевое слово из диалога
func HandleAppointmentsKeyword(hc *common.HandlerContext, text string) {
	hc.EndDialog()
	common.UpdateCriteria(hc, appointmentsCriteria, func(c *search.Criteria) {
		c.Keyword = strings.TrimSpace(text)
	})
	showAppointments(hc, 0, false)
}

// HandleAppointmentsDateStart запрашивает дату
func HandleAppointmentsDateStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateAdminAppointmentsDate,
		"📆 Lọc theo ngày",
		"Nhập ngày khám (dd/mm/yyyy):",
		appointmentsPath)
}

// HandleAppointmentsDate получает дату из диалога
func HandleAppointmentsDate(hc *common.HandlerContext, text string) {
	date, ok := formatting.ParseDateInput(text)
	if !ok {
		hc.Show(common.BuildPromptScreen("📆 Lọc theo ngày",
			common.ErrorMessage(common.ErrInvalidDate, ""), appointmentsPath))
		return
	}

	hc.EndDialog()
	common.UpdateCriteria(hc, appointmentsCriteria, func(c *search.Criteria) {
		c.Date = date
	})
	showAppointments(hc, 0, false)
}

// HandleAppointmentDetails карточка записи
func HandleAppointmentDetails(hc *common.HandlerContext, p common.Params) {
	workflow.ShowDetails(hc, service.ViewerAdmin, p, appointmentsPath, appointmentsPath)
}

// HandleConfirm подтверждает запись
func HandleConfirm(hc *common.HandlerContext, p common.Params) {
	board, a, ok := workflow.Find(hc, service.ViewerAdmin, p)
	if !ok {
		return
	}

	change, err := hc.Handler.Appointments.Confirm(hc.Ctx, a, service.ViewerAdmin)
	if err != nil {
		common.HandleError(hc, err, "confirm_appointment", "Xác nhận lịch hẹn thất bại.")
		return
	}
	board.Apply(change)

	common.LogAndAnswer(hc, "Appointment confirmed from bot", "✅ Đã xác nhận",
		zap.Int64("appointment_id", a.ID))

	updated, _ := board.Find(a.ID)
	hc.Show(workflow.BuildDetails(updated, service.ViewerAdmin, appointmentsPath, appointmentsPath))
}

// HandleCancelAsk спрашивает подтверждение отмены
func HandleCancelAsk(hc *common.HandlerContext, p common.Params) {
	workflow.AskCancel(hc, service.ViewerAdmin, p, appointmentsPath)
}

// HandleCancelConfirm отменяет запись
func HandleCancelConfirm(hc *common.HandlerContext, p common.Params) {
	workflow.Cancel(hc, service.ViewerAdmin, p, appointmentsPath, appointmentsPath)
}

// HandleDeleteAsk спрашивает подтверждение удаления
func HandleDeleteAsk(hc *common.HandlerContext, p common.Params) {
	_, a, ok := workflow.Find(hc, service.ViewerAdmin, p)
	if !ok {
		return
	}

	question := fmt.Sprintf("🗑 <b>Xóa lịch hẹn #%d?</b>\n\n%s\n\nThao tác này không thể hoàn tác.",
		a.ID, formatting.FormatAppointmentShort(a))
	hc.Show(common.BuildConfirmScreen(question,
		common.Path(appointmentsPath, a.ID, "delete", "confirm"),
		common.Path(appointmentsPath, a.ID)))
}

// HandleDeleteConfirm удаляет запись и убирает её из копии списка
func HandleDeleteConfirm(hc *common.HandlerContext, p common.Params) {
	board, a, ok := workflow.Find(hc, service.ViewerAdmin, p)
	if !ok {
		return
	}

	if err := hc.Handler.Appointments.Delete(hc.Ctx, a, service.ViewerAdmin); err != nil {
		common.HandleError(hc, err, "delete_appointment", "Xóa lịch hẹn thất bại.")
		return
	}
	board.Remove(a.ID)

	common.LogAndAnswer(hc, "Appointment deleted from bot", "🗑 Đã xóa",
		zap.Int64("appointment_id", a.ID))
	showAppointments(hc, 0, false)
}
