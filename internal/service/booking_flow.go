package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// BookingStep шаг оформления записи
type BookingStep string

const (
	StepDateSelected  BookingStep = "date_selected"
	StepSlotsLoaded   BookingStep = "slots_loaded"
	StepSlotSelected  BookingStep = "slot_selected"
	StepReasonEntered BookingStep = "reason_entered"
	StepSubmitting    BookingStep = "submitting"
	StepRedirected    BookingStep = "redirected"
)

// BookingFlow состояние оформления записи к одному врачу
type BookingFlow struct {
	Doctor        model.Doctor
	Step          BookingStep
	Date          time.Time
	Slots         []model.ScheduleSlot
	SlotID        int64
	Reason        string
	AppointmentID int64
	PaymentURL    string
}

// SelectedSlot выбранный слот
func (f *BookingFlow) SelectedSlot() (model.ScheduleSlot, bool) {
	for _, slot := range f.Slots {
		if slot.ID == f.SlotID {
			return slot, true
		}
	}
	return model.ScheduleSlot{}, false
}

// CanSubmit выбраны слот и причина, отправка ещё не идёт
func (f *BookingFlow) CanSubmit() bool {
	return f.Step == StepReasonEntered && f.SlotID != 0 && f.Reason != ""
}

// EnterReason сохраняет причину обращения
func (f *BookingFlow) EnterReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if f.SlotID == 0 {
		return ErrSlotUnavailable
	}
	f.Reason = reason
	f.Step = StepReasonEntered
	return nil
}

// SelectableSlots свободные слоты, без уже начавшихся, если дата сегодня.
// Слот, начавшийся ровно сейчас, тоже скрывается.
func SelectableSlots(slots []model.ScheduleSlot, date, now time.Time) []model.ScheduleSlot {
	today := model.StartOfDay(now).Equal(model.StartOfDay(date.In(now.Location())))

	result := make([]model.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Status != "" && slot.Status != model.SlotStatusAvailable {
			continue
		}
		if today {
			start, ok := model.SlotStart(now, slot.TimeSlot)
			if !ok || !start.After(now) {
				continue
			}
		}
		result = append(result, slot)
	}
	return result
}

// BookingService оформление записи: дата, слот, причина, запись и ссылка на оплату
type BookingService struct {
	client *backend.Client
	now    func() time.Time
	logger *zap.Logger
}

func NewBookingService(client *backend.Client, now func() time.Time, logger *zap.Logger) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		client: client,
		now:    now,
		logger: logger,
	}
}

// Now текущее время сервиса
func (s *BookingService) Now() time.Time {
	return s.now()
}

// Start открывает оформление к врачу на сегодняшнюю дату
func (s *BookingService) Start(ctx context.Context, doctorID int64) (*BookingFlow, error) {
	doctor, err := s.client.PublicDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	flow := &BookingFlow{Doctor: *doctor}
	if err := s.SelectDate(ctx, flow, s.now()); err != nil {
		return nil, err
	}
	return flow, nil
}

// SelectDate выбирает дату и загружает свободные слоты. Выбор слота сбрасывается.
func (s *BookingService) SelectDate(ctx context.Context, flow *BookingFlow, date time.Time) error {
	now := s.now()
	day := model.StartOfDay(date)
	if day.Before(model.StartOfDay(now)) {
		return ErrDateInPast
	}

	flow.Date = day
	flow.Step = StepDateSelected
	flow.SlotID = 0
	flow.Slots = nil

	slots, err := s.client.PublicSchedules(ctx, flow.Doctor.DoctorID, model.FormatDate(day))
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}

	available := make([]model.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Status == "" || slot.Status == model.SlotStatusAvailable {
			available = append(available, slot)
		}
	}

	flow.Slots = available
	flow.Step = StepSlotsLoaded
	return nil
}

// Selectable слоты, которые можно выбрать прямо сейчас
func (s *BookingService) Selectable(flow *BookingFlow) []model.ScheduleSlot {
	return SelectableSlots(flow.Slots, flow.Date, s.now())
}

// SelectSlot выбирает слот из доступных
func (s *BookingService) SelectSlot(flow *BookingFlow, slotID int64) error {
	if flow.Step == StepSubmitting || flow.Step == StepRedirected {
		return ErrBookingNotReady
	}

	for _, slot := range s.Selectable(flow) {
		if slot.ID == slotID {
			flow.SlotID = slotID
			flow.Step = StepSlotSelected
			if flow.Reason != "" {
				flow.Step = StepReasonEntered
			}
			return nil
		}
	}
	return ErrSlotUnavailable
}

// Submit создаёт запись и запрашивает ссылку на оплату, строго последовательно.
// Если ссылку получить не удалось, запись остаётся в backend, ID сохраняется
// во flow для повторного запроса оплаты.
func (s *BookingService) Submit(ctx context.Context, flow *BookingFlow) (string, error) {
	if !flow.CanSubmit() {
		return "", ErrBookingNotReady
	}
	flow.Step = StepSubmitting

	req := model.BookingRequest{
		DoctorID:   flow.Doctor.DoctorID,
		ScheduleID: flow.SlotID,
		Reason:     flow.Reason,
	}
	if err := Validate(req); err != nil {
		flow.Step = StepReasonEntered
		return "", err
	}

	appointment, err := s.client.BookAppointment(ctx, req)
	if err != nil {
		s.fail(flow)
		return "", fmt.Errorf("book appointment: %w", err)
	}
	if appointment.ID == 0 {
		s.fail(flow)
		return "", ErrNoAppointmentID
	}
	flow.AppointmentID = appointment.ID

	s.logger.Info("Appointment booked",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("doctor_id", req.DoctorID),
		zap.Int64("schedule_id", req.ScheduleID))

	url, err := requestPaymentURL(ctx, s.client, appointment.ID)
	if err != nil {
		s.logger.Warn("Payment url not issued",
			zap.Int64("appointment_id", appointment.ID),
			zap.Error(err))
		s.fail(flow)
		return "", err
	}

	flow.PaymentURL = url
	flow.Step = StepRedirected
	return url, nil
}

// fail возвращает flow к выбору слота: выбранный слот мог уже уйти
func (s *BookingService) fail(flow *BookingFlow) {
	flow.SlotID = 0
	flow.Step = StepSlotsLoaded
}
