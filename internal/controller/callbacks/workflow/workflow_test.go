package workflow

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"

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

func TestDetailsShowOnlyAllowedActions(t *testing.T) {
	a := model.Appointment{ID: 12, Status: model.AppointmentStatusPending, AppointmentDate: "2025-06-10", AppointmentTimeSlot: "08:00"}

	_, admin := BuildDetails(a, service.ViewerAdmin, "/admin/appointments", "/admin/appointments")
	assert.Contains(t, callbacks(admin), "/admin/appointments/12/confirm")
	assert.Contains(t, callbacks(admin), "/admin/appointments/12/cancel")
	assert.Contains(t, callbacks(admin), "/admin/appointments/12/delete")

	_, doctor := BuildDetails(a, service.ViewerDoctor, "/doctor/appointments", "/doctor/appointments")
	assert.NotContains(t, callbacks(doctor), "/doctor/appointments/12/complete")
	assert.Contains(t, callbacks(doctor), "/doctor/appointments/12/cancel")

	a.Status = model.AppointmentStatusPendingPayment
	_, patient := BuildDetails(a, service.ViewerPatient, "/patient/appointments", "/patient/appointments")
	assert.Contains(t, callbacks(patient), "/patient/appointments/12/pay")
	assert.NotContains(t, callbacks(patient), "/patient/appointments/12/cancel")
}

func TestBuildListPages(t *testing.T) {
	var items []model.Appointment
	for i := int64(1); i <= 8; i++ {
		items = append(items, model.Appointment{ID: i, Status: model.AppointmentStatusConfirmed})
	}

	text, kb := BuildList("<b>Lịch hẹn</b>", "", items, "/admin/appointments", "/admin/appointments", 1)
	data := callbacks(kb.Build())

	assert.Contains(t, text, "Tổng cộng: 8")
	assert.Contains(t, data, "/admin/appointments/7")
	assert.NotContains(t, data, "/admin/appointments/1")
	assert.Contains(t, data, "/admin/appointments?page=0")
}

func TestBuildListEmpty(t *testing.T) {
	text, kb := BuildList("<b>Lịch hẹn</b>", "", nil, "/p", "/p", 0)
	assert.Contains(t, text, "Không có lịch hẹn")
	assert.Zero(t, kb.Len())
}
