package doctor

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
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

func testAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: 1, Status: model.AppointmentStatusPending, AppointmentDate: "2025-06-10", PatientName: "Lê Văn Thái"},
		{ID: 2, Status: model.AppointmentStatusConfirmed, AppointmentDate: "2025-06-10", PatientName: "Phạm Thị Hoa"},
		{ID: 3, Status: model.AppointmentStatusConfirmed, AppointmentDate: "2025-06-11", PatientName: "Nguyễn Văn An"},
	}
}

func TestBuildDashboardCounts(t *testing.T) {
	text, kb := BuildDashboard("BS. Minh", testAppointments(), "2025-06-10")

	assert.Contains(t, text, "Hôm nay: 2 lịch hẹn")
	assert.Contains(t, text, ": 1\n")
	assert.Contains(t, callbacks(kb), "/doctor/schedule")
	assert.Contains(t, callbacks(kb), "/doctor/history")
}

func TestAppointmentsScreenFiltersByStatus(t *testing.T) {
	criteria := search.Criteria{Status: string(model.AppointmentStatusConfirmed)}

	text, kb := BuildAppointmentsScreen(testAppointments(), criteria, 0)
	data := callbacks(kb)

	assert.Contains(t, text, "Tổng cộng: 2")
	assert.Contains(t, data, "/doctor/appointments/2")
	assert.NotContains(t, data, "/doctor/appointments/1")
	assert.Contains(t, data, "/doctor/appointments/status/all")
}

func TestHistoryScreenShowsResetOnlyWithFilters(t *testing.T) {
	_, kb := BuildHistoryScreen(nil, search.Criteria{}, 0)
	assert.NotContains(t, callbacks(kb), "/doctor/history/reset")

	text, kb := BuildHistoryScreen(nil, search.Criteria{Keyword: "thai", DateFrom: "2025-06-01"}, 0)
	assert.Contains(t, callbacks(kb), "/doctor/history/reset")
	assert.Contains(t, text, "thai")
	assert.Contains(t, text, "01/06/2025 → …")
}

func TestCheckDateRange(t *testing.T) {
	assert.NoError(t, CheckDateRange(search.Criteria{DateFrom: "2025-06-01"}))
	assert.NoError(t, CheckDateRange(search.Criteria{DateFrom: "2025-06-01", DateTo: "2025-06-01"}))
	assert.ErrorIs(t, CheckDateRange(search.Criteria{DateFrom: "2025-06-02", DateTo: "2025-06-01"}), common.ErrDateRangeOrder)
}
