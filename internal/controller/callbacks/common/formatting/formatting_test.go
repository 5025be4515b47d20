package formatting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestEveryStatusHasDisplay(t *testing.T) {
	seen := make(map[string]bool)
	for _, status := range model.AppointmentStatuses {
		display := GetAppointmentStatusDisplay(status)
		assert.NotEqual(t, unknownStatus.Text, display.Text, status)
		assert.NotEmpty(t, display.Emoji, status)
		assert.False(t, seen[display.Text], "duplicate label for %s", status)
		seen[display.Text] = true
	}
}

func TestUnknownStatusIsNeutral(t *testing.T) {
	display := GetAppointmentStatusDisplay("ARCHIVED")
	assert.Equal(t, "ARCHIVED", display.Text)
	assert.Equal(t, unknownStatus.Color, display.Color)

	assert.Equal(t, unknownStatus, GetAppointmentStatusDisplay(""))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"300000", "300.000 ₫"},
		{"1500000.00", "1.500.000 ₫"},
		{"999", "999 ₫"},
		{"0", "Miễn phí"},
		{"250000.6", "250.001 ₫"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10/06/2025", "2025-06-10", true},
		{"1/6/2025", "2025-06-01", true},
		{"10.06.2025", "2025-06-10", true},
		{"2025-06-10", "2025-06-10", true},
		{" 10/06/2025 ", "2025-06-10", true},
		{"31/02/2025", "", false},
		{"hôm nay", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDateInput(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateWithWeekday(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Thứ Ba, 10/06/2025", FormatDateWithWeekday(day))
	assert.Equal(t, "Tháng 6/2025", GetMonthName(day))
	assert.Equal(t, "10/06/2025", FormatBackendDate("2025-06-10"))
}

func TestFormatAppointmentEscapesHTML(t *testing.T) {
	text := FormatAppointment(model.Appointment{
		ID:                  7,
		Status:              model.AppointmentStatusConfirmed,
		PatientName:         "A <b>",
		AppointmentDate:     "2025-06-10",
		AppointmentTimeSlot: "08:00",
	})
	assert.Contains(t, text, "A &lt;b&gt;")
	assert.Contains(t, text, "10/06/2025 08:00 - 08:30")
	assert.Contains(t, text, FormatStatus(model.AppointmentStatusConfirmed))
}
