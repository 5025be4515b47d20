package patient

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			data = append(data, button.CallbackData)
		}
	}
	return data
}

func testFlow(now time.Time) *service.BookingFlow {
	return &service.BookingFlow{
		Doctor: model.Doctor{DoctorID: 7, FullName: "Nguyễn Văn A", Price: decimal.NewFromInt(300000)},
		Step:   service.StepSlotsLoaded,
		Date:   model.StartOfDay(now),
		Slots: []model.ScheduleSlot{
			{ID: 101, TimeSlot: "08:00", Status: model.SlotStatusAvailable},
			{ID: 102, TimeSlot: "08:30", Status: model.SlotStatusAvailable},
		},
	}
}

func TestBookingScreenWithoutSlotHasNoSubmit(t *testing.T) {
	now := time.Date(2025, 6, 10, 7, 0, 0, 0, time.Local)
	flow := testFlow(now)

	text, kb := BuildBookingScreen(flow, flow.Slots, now)
	data := callbacks(kb)

	assert.Contains(t, text, "Nguyễn Văn A")
	assert.Contains(t, text, "300.000 ₫")
	assert.Contains(t, data, "/booking/date/2025-06-10")
	assert.Contains(t, data, "/booking/date/2025-06-16")
	assert.NotContains(t, data, "/booking/date/2025-06-17")
	assert.Contains(t, data, "/booking/slot/101")
	assert.NotContains(t, data, "/booking/reason")
	assert.NotContains(t, data, "/booking/submit")
	assert.Contains(t, data, "/doctors/7")
}

func TestBookingScreenReadyToSubmit(t *testing.T) {
	now := time.Date(2025, 6, 10, 7, 0, 0, 0, time.Local)
	flow := testFlow(now)
	flow.SlotID = 102
	flow.Step = service.StepSlotSelected
	require.NoError(t, flow.EnterReason("Đau đầu"))

	text, kb := BuildBookingScreen(flow, flow.Slots, now)
	data := callbacks(kb)

	assert.Contains(t, text, "08:30 - 09:00")
	assert.Contains(t, text, "Đau đầu")
	assert.Contains(t, data, "/booking/reason")
	assert.Contains(t, data, "/booking/submit")
}

func TestBookingScreenNoSlots(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.Local)
	flow := testFlow(now)

	text, kb := BuildBookingScreen(flow, nil, now)

	assert.Contains(t, text, "Không còn khung giờ trống")
	assert.NotContains(t, callbacks(kb), "/booking/slot/101")
}

func TestProfileRequestKeepsOtherFields(t *testing.T) {
	user := &model.User{FullName: "Trần B", PhoneNumber: "0912345678", Address: "Hà Nội", Gender: model.GenderFemale, Birthday: "1990-01-02"}

	req := ProfileRequest(user)

	assert.Equal(t, "Trần B", req.FullName)
	assert.Equal(t, "0912345678", req.PhoneNumber)
	assert.Equal(t, "Hà Nội", req.Address)
	assert.Equal(t, model.GenderFemale, req.Gender)
	assert.Equal(t, "1990-01-02", req.Birthday)
}

func TestAppointmentsScreen(t *testing.T) {
	items := []model.Appointment{{ID: 3, Status: model.AppointmentStatusPendingPayment}}

	_, kb := BuildAppointmentsScreen(items, 0)
	data := callbacks(kb)

	assert.Contains(t, data, "/patient/appointments/3")
	assert.Contains(t, data, "/patient/appointments/refresh")
	assert.Contains(t, data, "/find-doctor")
}
