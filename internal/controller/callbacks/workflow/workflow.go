// Package workflow общие экраны списка и карточки записи для администратора, врача и пациента.
package workflow

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// ListPageSize записей на странице списка
const ListPageSize = 6

// actionLabels подписи кнопок действий
var actionLabels = map[service.Action]string{
	service.ActionConfirm:  "✅ Xác nhận",
	service.ActionCancel:   "❌ Hủy lịch",
	service.ActionComplete: "✔️ Hoàn thành",
	service.ActionPay:      "💳 Thanh toán",
	service.ActionDelete:   "🗑 Xóa",
}

// ActionPath путь действия над записью: /admin/appointments/12/confirm
func ActionPath(basePath string, id int64, action service.Action) string {
	return common.Path(basePath, id, action)
}

// BuildList список записей: строка на запись и кнопка открытия карточки.
// Возвращает builder, чтобы экран добавил свои фильтры.
func BuildList(title, header string, items []model.Appointment, basePath, listPath string, page int) (string, *keyboard.Builder) {
	var b strings.Builder
	b.WriteString(title)
	if header != "" {
		b.WriteString("\n")
		b.WriteString(header)
	}

	pageItems, page, totalPages := common.Paginate(items, page, ListPageSize)

	kb := keyboard.NewBuilder()
	if len(items) == 0 {
		b.WriteString("\n\n📭 Không có lịch hẹn nào.")
		return b.String(), kb
	}

	fmt.Fprintf(&b, "\n\nTổng cộng: %d\n", len(items))
	buttons := make([]models.InlineKeyboardButton, 0, len(pageItems))
	for _, a := range pageItems {
		b.WriteString("\n")
		b.WriteString(formatting.FormatAppointmentShort(a))
		buttons = append(buttons, keyboard.Button(
			fmt.Sprintf("%s #%d", formatting.GetAppointmentStatusDisplay(a.Status).Emoji, a.ID),
			common.Path(basePath, a.ID),
		))
	}
	kb.Grid(buttons, 3)
	kb.AddPagination(common.PagePrefix(listPath), page, totalPages)

	return b.String(), kb
}

// BuildDetails карточка записи с действиями, разрешёнными этой стороне
func BuildDetails(a model.Appointment, viewer service.Viewer, basePath, backPath string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	buttons := make([]models.InlineKeyboardButton, 0, 3)
	for _, action := range service.Actions(a, viewer) {
		buttons = append(buttons, keyboard.Button(actionLabels[action], ActionPath(basePath, a.ID, action)))
	}
	kb.Grid(buttons, 2)
	kb.AddBackAndHome(backPath)

	return formatting.FormatAppointment(a), kb.Build()
}

// find запись из копии списка или ошибка для пользователя
func find(hc *common.HandlerContext, viewer service.Viewer, p common.Params) (*service.Board, model.Appointment, bool) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "appointment_id", "")
		return nil, model.Appointment{}, false
	}

	board, ok, err := common.FindAppointment(hc, viewer, id)
	if err != nil {
		common.HandleError(hc, err, "load_appointments", "Không tải được danh sách lịch hẹn.")
		return nil, model.Appointment{}, false
	}
	if !ok {
		common.HandleError(hc, service.ErrAppointmentNotFound, "find_appointment", "")
		return nil, model.Appointment{}, false
	}

	a, _ := board.Find(id)
	return board, a, true
}

// Find запись из копии списка экрана
func Find(hc *common.HandlerContext, viewer service.Viewer, p common.Params) (*service.Board, model.Appointment, bool) {
	return find(hc, viewer, p)
}

// ShowDetails карточка записи
func ShowDetails(hc *common.HandlerContext, viewer service.Viewer, p common.Params, basePath, backPath string) {
	_, a, ok := find(hc, viewer, p)
	if !ok {
		return
	}
	hc.Show(BuildDetails(a, viewer, basePath, backPath))
}

// AskCancel предупреждение перед отменой
func AskCancel(hc *common.HandlerContext, viewer service.Viewer, p common.Params, basePath string) {
	_, a, ok := find(hc, viewer, p)
	if !ok {
		return
	}
	if !service.Allowed(a, viewer, service.ActionCancel) {
		hc.AnswerAlert(common.ErrorMessage(service.ErrActionNotAllowed, ""))
		return
	}

	question := fmt.Sprintf("❓ <b>Hủy lịch hẹn #%d?</b>\n\n%s\n\n%s",
		a.ID,
		formatting.FormatSlot(a.AppointmentDate, a.AppointmentTimeSlot),
		formatting.Escape(service.CancelWarning(a.Status, viewer)))
	hc.Show(common.BuildConfirmScreen(question,
		common.Path(ActionPath(basePath, a.ID, service.ActionCancel), "confirm"),
		common.Path(basePath, a.ID)))
}

// Cancel отменяет запись и обновляет копию списка без перезагрузки
func Cancel(hc *common.HandlerContext, viewer service.Viewer, p common.Params, basePath, backPath string) {
	board, a, ok := find(hc, viewer, p)
	if !ok {
		return
	}

	change, err := hc.Handler.Appointments.Cancel(hc.Ctx, a, viewer)
	if err != nil {
		common.HandleError(hc, err, "cancel_appointment", "Hủy lịch hẹn thất bại.")
		return
	}
	board.Apply(change)

	common.LogAndAnswer(hc, "Appointment cancelled from bot", "✅ Đã hủy lịch hẹn",
		zap.Int64("appointment_id", a.ID),
		zap.String("status", string(change.Status)))

	updated, _ := board.Find(a.ID)
	hc.Show(BuildDetails(updated, viewer, basePath, backPath))
}

// ShowPaymentLink выдаёт ссылку на оплату и запоминает чат для уведомления о результате
func ShowPaymentLink(hc *common.HandlerContext, appointmentID int64, url string) {
	if _, err := hc.Handler.Payments.Track(hc.Ctx, appointmentID, hc.TelegramID, hc.ChatID); err != nil {
		hc.Handler.Logger.Warn("Failed to track payment return",
			zap.Int64("appointment_id", appointmentID),
			zap.Error(err))
	}

	text := fmt.Sprintf("💳 <b>Thanh toán lịch hẹn #%d</b>\n\n"+
		"Nhấn nút bên dưới để chuyển đến trang thanh toán.\n"+
		"Sau khi thanh toán, bot sẽ thông báo kết quả cho bạn.", appointmentID)
	kb := keyboard.NewBuilder().
		Row(keyboard.URLButton("💳 Thanh toán ngay", url)).
		Row(keyboard.Button("📋 Lịch hẹn của tôi", "/patient/appointments")).
		AddHomeButton().
		Build()
	hc.Show(text, kb)
}

// ShowPaymentRetry ошибка получения ссылки: запись создана, оплату можно запросить снова
func ShowPaymentRetry(hc *common.HandlerContext, appointmentID int64, err error) {
	text := fmt.Sprintf("%s\n\nLịch hẹn #%d đã được tạo nhưng chưa thanh toán. "+
		"Lịch hẹn chưa thanh toán sẽ tự hết hạn.",
		formatting.Escape(common.ErrorMessage(err, "Không tạo được link thanh toán.")), appointmentID)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔁 Thử lại thanh toán", ActionPath("/patient/appointments", appointmentID, service.ActionPay))).
		Row(keyboard.Button("📋 Lịch hẹn của tôi", "/patient/appointments")).
		Build()
	hc.Show(text, kb)
}
