package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Escape экранирует текст для ParseModeHTML
func Escape(s string) string {
	return html.EscapeString(s)
}

// OrDash пустое значение как "—"
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return Escape(s)
}

// Truncate обрезает строку до n символов
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// FormatSlot дата и интервал приёма: "10/06/2025 08:00 - 08:30"
func FormatSlot(date, timeSlot string) string {
	return fmt.Sprintf("%s %s", FormatBackendDate(date), model.TimeSlotLabel(timeSlot))
}

// FormatAppointmentShort строка списка записей
func FormatAppointmentShort(a model.Appointment) string {
	return fmt.Sprintf("%s <b>#%d</b> %s\n   👤 %s · 🩺 %s",
		GetAppointmentStatusDisplay(a.Status).Emoji,
		a.ID,
		FormatSlot(a.AppointmentDate, a.AppointmentTimeSlot),
		OrDash(a.PatientName),
		OrDash(a.DoctorName),
	)
}

// FormatAppointment карточка записи
func FormatAppointment(a model.Appointment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📋 <b>Lịch hẹn #%d</b>\n\n", a.ID)
	fmt.Fprintf(&b, "📊 Trạng thái: %s\n", FormatStatus(a.Status))
	fmt.Fprintf(&b, "📅 Thời gian: %s\n", FormatSlot(a.AppointmentDate, a.AppointmentTimeSlot))
	fmt.Fprintf(&b, "👤 Bệnh nhân: %s\n", OrDash(a.PatientName))
	if a.PatientPhone != "" {
		fmt.Fprintf(&b, "📞 SĐT: %s\n", Escape(a.PatientPhone))
	}
	fmt.Fprintf(&b, "🩺 Bác sĩ: %s\n", OrDash(a.DoctorName))
	if a.SpecialtyName != "" {
		fmt.Fprintf(&b, "🏷 Chuyên khoa: %s\n", Escape(a.SpecialtyName))
	}
	if a.ClinicName != "" {
		fmt.Fprintf(&b, "🏥 Phòng khám: %s\n", Escape(a.ClinicName))
	}
	fmt.Fprintf(&b, "📝 Lý do: %s\n", OrDash(a.Reason))
	if a.Diagnosis != "" {
		fmt.Fprintf(&b, "🔬 Chẩn đoán: %s\n", Escape(a.Diagnosis))
	}
	if a.Prescription != "" {
		fmt.Fprintf(&b, "💊 Đơn thuốc: %s\n", Escape(a.Prescription))
	}

	return b.String()
}

// FormatDoctorShort строка списка врачей
func FormatDoctorShort(d model.Doctor) string {
	return fmt.Sprintf("👨‍⚕️ <b>%s</b>\n   %s · %s · %s",
		Escape(d.FullName),
		OrDash(d.SpecialtyName()),
		OrDash(d.ClinicName()),
		FormatPrice(d.Price),
	)
}

// FormatDoctorInfo карточка врача
func FormatDoctorInfo(d model.Doctor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👨‍⚕️ <b>%s</b>\n", Escape(d.FullName))
	if d.AcademicDegree != "" {
		fmt.Fprintf(&b, "🎓 %s\n", Escape(d.AcademicDegree))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "🏷 Chuyên khoa: %s\n", OrDash(d.SpecialtyName()))
	fmt.Fprintf(&b, "🏥 Phòng khám: %s\n", OrDash(d.ClinicName()))
	if d.Clinic != nil && d.Clinic.Address != "" {
		fmt.Fprintf(&b, "📍 Địa chỉ: %s\n", Escape(d.Clinic.Address))
	}
	fmt.Fprintf(&b, "💰 Giá khám: %s\n", FormatPrice(d.Price))
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", Escape(Truncate(d.Description, 800)))
	}

	return b.String()
}

// FormatUserInfo карточка пользователя
func FormatUserInfo(u model.User) string {
	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, GetRoleName(role))
	}

	active := "✅ Đang hoạt động"
	if !u.IsActive {
		active = "⛔ Đã khóa"
	}

	return fmt.Sprintf(
		"👤 <b>%s</b>\n\n"+
			"📧 Email: %s\n"+
			"📞 SĐT: %s\n"+
			"📍 Địa chỉ: %s\n"+
			"⚧ Giới tính: %s\n"+
			"🎂 Ngày sinh: %s\n"+
			"🔑 Vai trò: %s\n"+
			"%s",
		OrDash(u.FullName),
		OrDash(u.Email),
		OrDash(u.PhoneNumber),
		OrDash(u.Address),
		GetGenderName(u.Gender),
		OrDash(FormatBackendDate(u.Birthday)),
		OrDash(strings.Join(roles, ", ")),
		active,
	) + formatPermissions(u.ExtraPermissions)
}

func formatPermissions(perms []string) string {
	if len(perms) == 0 {
		return ""
	}
	return "\n🧩 Quyền bổ sung: " + Escape(strings.Join(perms, ", "))
}

// FormatClinicInfo карточка клиники
func FormatClinicInfo(c model.Clinic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏥 <b>%s</b>\n\n", Escape(c.Name))
	fmt.Fprintf(&b, "📍 Địa chỉ: %s\n", OrDash(c.Address))
	fmt.Fprintf(&b, "📞 SĐT: %s\n", OrDash(c.PhoneNumber))
	if c.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", Escape(Truncate(c.Description, 800)))
	}
	return b.String()
}

// FormatSpecialtyInfo карточка специальности
func FormatSpecialtyInfo(s model.Specialty) string {
	text := fmt.Sprintf("🏷 <b>%s</b>\n", Escape(s.Name))
	if s.Description != "" {
		text += "\n" + Escape(Truncate(s.Description, 800)) + "\n"
	}
	return text
}
