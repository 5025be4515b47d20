// Package patient экраны пациента: записи, оплата, профиль и оформление записи.
package patient

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	dashboardPath    = "/patient"
	appointmentsPath = "/patient/appointments"
	profilePath      = "/patient/profile"
)

// Register регистрирует экраны пациента и оформления записи
func Register(r common.Registrar) {
	r.Handle(dashboardPath, HandleDashboard)

	r.Handle(appointmentsPath, HandleAppointments)
	r.Handle("/patient/appointments/refresh", HandleAppointmentsRefresh)
	r.Handle("/patient/appointments/:id", HandleAppointmentDetails)
	r.Handle("/patient/appointments/:id/pay", HandlePay)
	r.Handle("/patient/appointments/:id/cancel", HandleCancelAsk)
	r.Handle("/patient/appointments/:id/cancel/confirm", HandleCancelConfirm)

	r.Handle(profilePath, HandleProfile)
	r.Handle("/patient/profile/phone", HandleProfilePhoneStart)
	r.Handle("/patient/profile/address", HandleProfileAddressStart)

	r.Handle("/booking/:doctorId", HandleBookingStart)
	r.Handle("/booking/date/:date", HandleBookingDate)
	r.Handle("/booking/slot/:slotId", HandleBookingSlot)
	r.Handle("/booking/reason", HandleBookingReasonStart)
	r.Handle("/booking/submit", HandleBookingSubmit)
}

// HandleDashboard главный экран пациента
func HandleDashboard(hc *common.HandlerContext, _ common.Params) {
	text := fmt.Sprintf("🧑 <b>Trang bệnh nhân</b>\n\n👋 %s", formatting.OrDash(hc.Session.User.FullName))
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔍 Tìm bác sĩ & đặt lịch", "/find-doctor")).
		Row(keyboard.Button("📋 Lịch hẹn của tôi", appointmentsPath)).
		Row(keyboard.Button("👤 Hồ sơ cá nhân", profilePath)).
		AddHomeButton().
		Build()
	hc.Show(text, kb)
}

// HandleAppointments список записей пациента, новые сверху
func HandleAppointments(hc *common.HandlerContext, p common.Params) {
	showAppointments(hc, p.Page(), false)
}

// HandleAppointmentsRefresh перечитывает список из backend
func HandleAppointmentsRefresh(hc *common.HandlerContext, _ common.Params) {
	hc.Answer("🔄 Đã cập nhật")
	showAppointments(hc, 0, true)
}

func showAppointments(hc *common.HandlerContext, page int, reload bool) {
	board, err := common.LoadBoard(hc, service.ViewerPatient, reload)
	if err != nil {
		common.HandleError(hc, err, "load_patient_appointments", "Không tải được lịch hẹn.")
		return
	}

	text, kb := BuildAppointmentsScreen(board.Items(), page)
	hc.Show(text, kb)
}

// BuildAppointmentsScreen экран списка записей пациента
func BuildAppointmentsScreen(items []model.Appointment, page int) (string, *models.InlineKeyboardMarkup) {
	text, kb := workflow.BuildList("📋 <b>Lịch hẹn của tôi</b>", "", items, appointmentsPath, appointmentsPath, page)
	kb.Row(
		keyboard.RefreshButton("/patient/appointments/refresh"),
		keyboard.Button("➕ Đặt lịch mới", "/find-doctor"),
	)
	kb.AddBackAndHome(dashboardPath)
	return text, kb.Build()
}

// HandleAppointmentDetails карточка записи пациента
func HandleAppointmentDetails(hc *common.HandlerContext, p common.Params) {
	workflow.ShowDetails(hc, service.ViewerPatient, p, appointmentsPath, appointmentsPath)
}

// HandlePay повторно запрашивает ссылку на оплату
func HandlePay(hc *common.HandlerContext, p common.Params) {
	_, a, ok := workflow.Find(hc, service.ViewerPatient, p)
	if !ok {
		return
	}

	url, err := hc.Handler.Appointments.RetryPayment(hc.Ctx, a, service.ViewerPatient)
	if err != nil {
		common.HandleError(hc, err, "retry_payment", "Không tạo được link thanh toán.")
		return
	}
	workflow.ShowPaymentLink(hc, a.ID, url)
}

// HandleCancelAsk спрашивает подтверждение отмены
func HandleCancelAsk(hc *common.HandlerContext, p common.Params) {
	workflow.AskCancel(hc, service.ViewerPatient, p, appointmentsPath)
}

// HandleCancelConfirm отменяет запись
func HandleCancelConfirm(hc *common.HandlerContext, p common.Params) {
	workflow.Cancel(hc, service.ViewerPatient, p, appointmentsPath, appointmentsPath)
}
