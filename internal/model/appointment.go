package model

import "time"

// AppointmentStatus статус записи на приём
type AppointmentStatus string

const (
	AppointmentStatusPendingPayment AppointmentStatus = "PENDING_PAYMENT"
	AppointmentStatusPending        AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed      AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted      AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled      AppointmentStatus = "CANCELLED"
	AppointmentStatusRefundPending  AppointmentStatus = "REFUND_PENDING"
)

// AppointmentStatuses порядок статусов для фильтров и доски
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPendingPayment,
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusRefundPending,
}

// Appointment запись на приём в том виде, в котором её отдаёт backend
type Appointment struct {
	ID                  int64             `json:"id"`
	CreatedAt           string            `json:"createdAt,omitempty"`
	Status              AppointmentStatus `json:"status"`
	Reason              string            `json:"reason"`
	PatientID           int64             `json:"patientId"`
	PatientName         string            `json:"patientName"`
	PatientPhone        string            `json:"patientPhone"`
	DoctorID            int64             `json:"doctorId"`
	DoctorName          string            `json:"doctorName"`
	SpecialtyName       string            `json:"specialtyName"`
	ClinicName          string            `json:"clinicName"`
	AppointmentDate     string            `json:"appointmentDate"`
	AppointmentTimeSlot string            `json:"appointmentTimeSlot"`
	Diagnosis           string            `json:"diagnosis"`
	Prescription        string            `json:"prescription"`
}

// Date разбирает дату приёма (YYYY-MM-DD)
func (a *Appointment) Date() (time.Time, bool) {
	return ParseDate(a.AppointmentDate)
}

// Created разбирает время создания записи
func (a *Appointment) Created() (time.Time, bool) {
	if a.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, a.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BookingRequest тело POST /appointments/book
type BookingRequest struct {
	DoctorID   int64  `json:"doctorId" validate:"required,gt=0"`
	ScheduleID int64  `json:"scheduleId" validate:"required,gt=0"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

// CompleteRequest тело PUT /doctor/appointments/{id}/complete
type CompleteRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required,max=1000"`
	Prescription string `json:"prescription,omitempty" validate:"max=2000"`
}

// PaymentURL ответ GET /payment/create-payment
type PaymentURL struct {
	URL string `json:"url"`
}
