package formatting

import "github.com/Freeeeeet/clinic_bot/internal/model"

// StatusDisplay отображение статуса: emoji, подпись и цвет бейджа
type StatusDisplay struct {
	Emoji string
	Text  string
	Color string
}

// String emoji и подпись
func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// appointmentStatuses единая таблица для всех экранов
var appointmentStatuses = map[model.AppointmentStatus]StatusDisplay{
	model.AppointmentStatusPendingPayment: {"💳", "Chờ thanh toán", "orange"},
	model.AppointmentStatusPending:        {"⏳", "Chờ xác nhận", "gold"},
	model.AppointmentStatusConfirmed:      {"✅", "Đã xác nhận", "blue"},
	model.AppointmentStatusCompleted:      {"✔️", "Hoàn thành", "green"},
	model.AppointmentStatusCancelled:      {"❌", "Đã hủy", "red"},
	model.AppointmentStatusRefundPending:  {"💸", "Chờ hoàn tiền", "purple"},
}

// unknownStatus для статусов, которых нет в таблице
var unknownStatus = StatusDisplay{"❓", "Không xác định", "default"}

// GetAppointmentStatusDisplay возвращает отображение статуса записи.
// Неизвестный статус показывается нейтральным бейджем с исходным значением.
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	if display, ok := appointmentStatuses[status]; ok {
		return display
	}
	if status == "" {
		return unknownStatus
	}
	return StatusDisplay{Emoji: unknownStatus.Emoji, Text: string(status), Color: unknownStatus.Color}
}

// FormatStatus emoji и подпись статуса записи
func FormatStatus(status model.AppointmentStatus) string {
	return GetAppointmentStatusDisplay(status).String()
}

// GetSlotStatusDisplay возвращает отображение статуса опубликованного слота
func GetSlotStatusDisplay(status model.SlotStatus) StatusDisplay {
	displays := map[model.SlotStatus]StatusDisplay{
		model.SlotStatusAvailable: {"🟢", "Còn trống", "green"},
		model.SlotStatusBooked:    {"🔴", "Đã đặt", "red"},
		model.SlotStatusCancelled: {"⚫️", "Đã hủy", "default"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return unknownStatus
}

// GetRoleName название роли
func GetRoleName(role string) string {
	names := map[string]string{
		model.RoleSuperAdmin: "Quản trị cấp cao",
		model.RoleAdmin:      "Quản trị viên",
		model.RoleDoctor:     "Bác sĩ",
		model.RolePatient:    "Bệnh nhân",
	}
	if name, ok := names[role]; ok {
		return name
	}
	return role
}

// GetGenderName название пола
func GetGenderName(gender string) string {
	switch gender {
	case model.GenderMale:
		return "Nam"
	case model.GenderFemale:
		return "Nữ"
	case model.GenderOther:
		return "Khác"
	default:
		return "—"
	}
}
