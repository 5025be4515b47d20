package service

import "errors"

var (
	ErrActionNotAllowed    = errors.New("action not allowed for appointment status")
	ErrDiagnosisRequired   = errors.New("diagnosis is required")
	ErrNoPaymentURL        = errors.New("backend returned no payment url")
	ErrNoAppointmentID     = errors.New("backend returned no appointment id")
	ErrBookingNotReady     = errors.New("booking is not ready to submit")
	ErrDateInPast          = errors.New("date is in the past")
	ErrSlotUnavailable     = errors.New("slot is not selectable")
	ErrReasonRequired      = errors.New("reason is required")
	ErrSlotLocked          = errors.New("slot is already published or in the past")
	ErrNothingSelected     = errors.New("no slots selected")
	ErrNoDoctor            = errors.New("doctor is not chosen")
	ErrInvalidBirthday     = errors.New("invalid birthday")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrNoRoles             = errors.New("user needs at least one role")
	ErrNoSpecialty         = errors.New("specialty is not chosen")
	ErrNoClinic            = errors.New("clinic is not chosen")
)
