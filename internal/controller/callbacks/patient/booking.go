package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	bookingKey  = "booking"
	bookingDays = 7
)

// loadFlow текущее оформление записи
func loadFlow(hc *common.HandlerContext) (*service.BookingFlow, bool) {
	flow, ok := common.Data[*service.BookingFlow](hc, bookingKey)
	if !ok || flow == nil {
		common.HandleError(hc, common.ErrDialogExpired, "booking_flow", "")
		return nil, false
	}
	return flow, true
}

// HandleBookingStart открывает оформление записи к врачу
func HandleBookingStart(hc *common.HandlerContext, p common.Params) {
	doctorID, err := p.Int64("doctorId")
	if err != nil {
		common.HandleError(hc, err, "booking_doctor_id", "")
		return
	}

	flow, err := hc.Handler.Booking.Start(hc.Ctx, doctorID)
	if err != nil {
		common.HandleError(hc, err, "booking_start", "Không tải được lịch khám của bác sĩ.")
		return
	}
	hc.SetData(bookingKey, flow)
	showBooking(hc, flow)
}

// HandleBookingDate выбирает дату
func HandleBookingDate(hc *common.HandlerContext, p common.Params) {
	flow, ok := loadFlow(hc)
	if !ok {
		return
	}

	date, ok := model.ParseDate(p.String("date"))
	if !ok {
		common.HandleError(hc, common.ErrInvalidDate, "booking_date", "")
		return
	}

	if err := hc.Handler.Booking.SelectDate(hc.Ctx, flow, date); err != nil {
		common.HandleError(hc, err, "booking_select_date", "Không tải được khung giờ.")
		return
	}
	showBooking(hc, flow)
}

// HandleBookingSlot выбирает слот
func HandleBookingSlot(hc *common.HandlerContext, p common.Params) {
	flow, ok := loadFlow(hc)
	if !ok {
		return
	}

	slotID, err := p.Int64("slotId")
	if err != nil {
		common.HandleError(hc, err, "booking_slot_id", "")
		return
	}

	if err := hc.Handler.Booking.SelectSlot(flow, slotID); err != nil {
		common.HandleError(hc, err, "booking_select_slot", "")
		return
	}
	showBooking(hc, flow)
}

// HandleBookingReasonStart запрашивает причину обращения
func HandleBookingReasonStart(hc *common.HandlerContext, _ common.Params) {
	flow, ok := loadFlow(hc)
	if !ok {
		return
	}
	if flow.SlotID == 0 {
		common.HandleError(hc, service.ErrSlotUnavailable, "booking_reason", "")
		return
	}

	common.Prompt(hc, state.StateBookingReason,
		"✍️ Lý do khám",
		"Mô tả ngắn gọn triệu chứng hoặc lý do bạn muốn khám:",
		common.Path("booking", flow.Doctor.DoctorID))
}

// HandleBookingReason получает причину из диалога
func HandleBookingReason(hc *common.HandlerContext, text string) {
	flow, ok := common.Data[*service.BookingFlow](hc, bookingKey)
	if !ok || flow == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "booking_reason", "")
		return
	}

	if err := flow.EnterReason(text); err != nil {
		hc.Show(common.BuildPromptScreen("✍️ Lý do khám",
			formatting.Escape(common.ErrorMessage(err, ""))+"\n\nVui lòng nhập lại:",
			common.Path("booking", flow.Doctor.DoctorID)))
		return
	}

	hc.EndDialog()
	showBooking(hc, flow)
}

// HandleBookingSubmit создаёт запись и выдаёт ссылку на оплату
func HandleBookingSubmit(hc *common.HandlerContext, _ common.Params) {
	flow, ok := loadFlow(hc)
	if !ok {
		return
	}

	url, err := hc.Handler.Booking.Submit(hc.Ctx, flow)
	switch {
	case err == nil:
		hc.DeleteData(bookingKey)
		common.ResetBoard(hc, service.ViewerPatient)
		hc.Answer("✅ Đặt lịch thành công")
		workflow.ShowPaymentLink(hc, flow.AppointmentID, url)
	case flow.AppointmentID != 0 && !errors.Is(err, service.ErrBookingNotReady):
		// запись создана, ссылка на оплату не получена
		hc.Handler.Logger.Warn("Booking created without payment url",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", flow.AppointmentID),
			zap.Error(err))
		appointmentID := flow.AppointmentID
		hc.DeleteData(bookingKey)
		common.ResetBoard(hc, service.ViewerPatient)
		workflow.ShowPaymentRetry(hc, appointmentID, err)
	default:
		hc.Handler.Logger.Warn("Booking failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("doctor_id", flow.Doctor.DoctorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err, "Đặt lịch thất bại, vui lòng chọn lại khung giờ."))
		if !errors.Is(err, service.ErrBookingNotReady) {
			// выбранный слот мог уйти, перечитываем день
			if err := hc.Handler.Booking.SelectDate(hc.Ctx, flow, flow.Date); err != nil {
				hc.Handler.Logger.Warn("Failed to reload slots", zap.Error(err))
			}
		}
		showBooking(hc, flow)
	}
}

func showBooking(hc *common.HandlerContext, flow *service.BookingFlow) {
	selectable := hc.Handler.Booking.Selectable(flow)
	hc.Show(BuildBookingScreen(flow, selectable, hc.Handler.Booking.Now()))
}

// BuildBookingScreen экран оформления: дни недели вперёд, свободные слоты, причина, отправка
func BuildBookingScreen(flow *service.BookingFlow, selectable []model.ScheduleSlot, now time.Time) (string, *models.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString("📅 <b>Đặt lịch khám</b>\n\n")
	fmt.Fprintf(&b, "👨‍⚕️ %s\n", formatting.Escape(flow.Doctor.FullName))
	if name := flow.Doctor.SpecialtyName(); name != "" {
		fmt.Fprintf(&b, "🏷 %s\n", formatting.Escape(name))
	}
	fmt.Fprintf(&b, "💰 %s\n", formatting.FormatPrice(flow.Doctor.Price))
	fmt.Fprintf(&b, "\n📆 Ngày: <b>%s</b>\n", formatting.FormatDateWithWeekday(flow.Date))

	if slot, ok := flow.SelectedSlot(); ok && flow.SlotID != 0 {
		fmt.Fprintf(&b, "🕐 Giờ: <b>%s</b>\n", model.TimeSlotLabel(slot.TimeSlot))
	}
	if flow.Reason != "" {
		fmt.Fprintf(&b, "✍️ Lý do: %s\n", formatting.Escape(flow.Reason))
	}

	kb := keyboard.NewBuilder()

	today := model.StartOfDay(now)
	days := make([]models.InlineKeyboardButton, 0, bookingDays)
	for i := 0; i < bookingDays; i++ {
		day := today.AddDate(0, 0, i)
		label := fmt.Sprintf("%s %02d/%02d", formatting.GetWeekdayShortName(int(day.Weekday())), day.Day(), int(day.Month()))
		if day.Equal(flow.Date) {
			label = "• " + label
		}
		days = append(days, keyboard.Button(label, common.Path("booking", "date", model.FormatDate(day))))
	}
	kb.Grid(days, 4)

	if len(selectable) == 0 {
		b.WriteString("\n📭 Không còn khung giờ trống trong ngày này.")
	} else {
		b.WriteString("\nChọn khung giờ:")
		slots := make([]models.InlineKeyboardButton, 0, len(selectable))
		for _, slot := range selectable {
			label := slot.TimeSlot
			if slot.ID == flow.SlotID {
				label = "✅ " + label
			}
			slots = append(slots, keyboard.Button(label, common.Path("booking", "slot", slot.ID)))
		}
		kb.Grid(slots, 4)
	}

	if flow.SlotID != 0 {
		reasonLabel := "✍️ Nhập lý do khám"
		if flow.Reason != "" {
			reasonLabel = "✍️ Sửa lý do khám"
		}
		kb.Row(keyboard.Button(reasonLabel, "/booking/reason"))
	}
	if flow.CanSubmit() {
		kb.Row(keyboard.Button("💳 Xác nhận & thanh toán", "/booking/submit"))
	}

	kb.AddBackAndHome(common.Path("doctors", flow.Doctor.DoctorID))
	return b.String(), kb.Build()
}
