package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
)

// Viewer с чьей стороны открыт список записей
type Viewer string

const (
	ViewerAdmin   Viewer = "admin"
	ViewerDoctor  Viewer = "doctor"
	ViewerPatient Viewer = "patient"
)

// Action действие над записью
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionPay      Action = "pay"
	ActionDelete   Action = "delete"
)

// Тексты подтверждения отмены
const (
	CancelWarningGeneric = "Bạn có chắc chắn muốn hủy lịch hẹn này không?"
	CancelWarningPaid    = "Lịch hẹn này ĐÃ THANH TOÁN. Nếu hủy, hệ thống sẽ tiến hành thủ tục hoàn tiền (chờ duyệt). Bạn có chắc chắn muốn hủy?"
)

// Actions допустимые действия для записи в зависимости от статуса и стороны
func Actions(a model.Appointment, viewer Viewer) []Action {
	var actions []Action

	switch viewer {
	case ViewerAdmin:
		if a.Status == model.AppointmentStatusPending || a.Status == model.AppointmentStatusPendingPayment {
			actions = append(actions, ActionConfirm)
		}
		if isCancellable(a.Status) {
			actions = append(actions, ActionCancel)
		}
		actions = append(actions, ActionDelete)
	case ViewerDoctor:
		if a.Status == model.AppointmentStatusConfirmed {
			actions = append(actions, ActionComplete)
		}
		if isCancellable(a.Status) {
			actions = append(actions, ActionCancel)
		}
	case ViewerPatient:
		if a.Status == model.AppointmentStatusPendingPayment {
			actions = append(actions, ActionPay)
		}
		if isCancellable(a.Status) {
			actions = append(actions, ActionCancel)
		}
	}

	return actions
}

// Allowed проверяет, разрешено ли действие
func Allowed(a model.Appointment, viewer Viewer, action Action) bool {
	for _, allowed := range Actions(a, viewer) {
		if allowed == action {
			return true
		}
	}
	return false
}

func isCancellable(status model.AppointmentStatus) bool {
	return status == model.AppointmentStatusPending || status == model.AppointmentStatusConfirmed
}

// CancelWarning текст подтверждения отмены. Пациент, отменяющий оплаченную
// запись, получает предупреждение о возврате денег.
func CancelWarning(status model.AppointmentStatus, viewer Viewer) string {
	if viewer == ViewerPatient && status == model.AppointmentStatusConfirmed {
		return CancelWarningPaid
	}
	return CancelWarningGeneric
}

// StatusChange подмножество полей записи, которое подтвердил backend
type StatusChange struct {
	ID           int64
	Status       model.AppointmentStatus
	Diagnosis    string
	Prescription string
}

func changeOf(a model.Appointment, status model.AppointmentStatus) StatusChange {
	return StatusChange{
		ID:           a.ID,
		Status:       status,
		Diagnosis:    a.Diagnosis,
		Prescription: a.Prescription,
	}
}

// AppointmentService действия над записями через backend
type AppointmentService struct {
	client *backend.Client
	logger *zap.Logger
}

func NewAppointmentService(client *backend.Client, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		client: client,
		logger: logger,
	}
}

// List загружает записи для стороны: все (админ), свои приёмы (врач), свою историю (пациент)
func (s *AppointmentService) List(ctx context.Context, viewer Viewer) ([]model.Appointment, error) {
	var (
		list []model.Appointment
		err  error
	)

	switch viewer {
	case ViewerAdmin:
		list, err = s.client.AdminAppointments(ctx)
	case ViewerDoctor:
		list, err = s.client.DoctorAppointments(ctx)
	case ViewerPatient:
		list, err = s.client.MyAppointments(ctx)
	default:
		return nil, fmt.Errorf("unknown viewer %q", viewer)
	}
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	sortNewestFirst(list)
	return list, nil
}

// History завершённые и отменённые приёмы врача с фильтрами
func (s *AppointmentService) History(ctx context.Context, criteria search.Criteria) ([]model.Appointment, error) {
	list, err := s.List(ctx, ViewerDoctor)
	if err != nil {
		return nil, err
	}

	finished := search.FilterByStatuses(list, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled)
	return search.FilterAppointments(finished, criteria), nil
}

// Confirm подтверждает запись
func (s *AppointmentService) Confirm(ctx context.Context, a model.Appointment, viewer Viewer) (StatusChange, error) {
	if !Allowed(a, viewer, ActionConfirm) {
		return StatusChange{}, ErrActionNotAllowed
	}

	if err := s.client.UpdateAppointmentStatus(ctx, a.ID, model.AppointmentStatusConfirmed); err != nil {
		return StatusChange{}, fmt.Errorf("confirm appointment: %w", err)
	}

	s.logger.Info("Appointment confirmed", zap.Int64("appointment_id", a.ID))
	return changeOf(a, model.AppointmentStatusConfirmed), nil
}

// Cancel отменяет запись. Для пациента новое состояние перечитывается
// из backend: отмена оплаченной записи уходит в возврат денег.
func (s *AppointmentService) Cancel(ctx context.Context, a model.Appointment, viewer Viewer) (StatusChange, error) {
	if !Allowed(a, viewer, ActionCancel) {
		return StatusChange{}, ErrActionNotAllowed
	}

	if viewer != ViewerPatient {
		if err := s.client.UpdateAppointmentStatus(ctx, a.ID, model.AppointmentStatusCancelled); err != nil {
			return StatusChange{}, fmt.Errorf("cancel appointment: %w", err)
		}
		s.logger.Info("Appointment cancelled",
			zap.Int64("appointment_id", a.ID),
			zap.String("viewer", string(viewer)))
		return changeOf(a, model.AppointmentStatusCancelled), nil
	}

	if err := s.client.CancelMyAppointment(ctx, a.ID); err != nil {
		return StatusChange{}, fmt.Errorf("cancel my appointment: %w", err)
	}

	s.logger.Info("Appointment cancelled by patient", zap.Int64("appointment_id", a.ID))

	history, err := s.client.MyAppointments(ctx)
	if err != nil {
		s.logger.Warn("Failed to reload history after cancel",
			zap.Int64("appointment_id", a.ID),
			zap.Error(err))
		return changeOf(a, model.AppointmentStatusCancelled), nil
	}
	for _, fresh := range history {
		if fresh.ID == a.ID {
			return changeOf(fresh, fresh.Status), nil
		}
	}
	return changeOf(a, model.AppointmentStatusCancelled), nil
}

// Complete завершает приём. Диагноз обязателен, рецепт нет.
func (s *AppointmentService) Complete(ctx context.Context, a model.Appointment, viewer Viewer, diagnosis, prescription string) (StatusChange, error) {
	if !Allowed(a, viewer, ActionComplete) {
		return StatusChange{}, ErrActionNotAllowed
	}

	req := model.CompleteRequest{
		Diagnosis:    strings.TrimSpace(diagnosis),
		Prescription: strings.TrimSpace(prescription),
	}
	if req.Diagnosis == "" {
		return StatusChange{}, ErrDiagnosisRequired
	}
	if err := Validate(req); err != nil {
		return StatusChange{}, err
	}

	if err := s.client.CompleteAppointment(ctx, a.ID, req); err != nil {
		return StatusChange{}, fmt.Errorf("complete appointment: %w", err)
	}

	s.logger.Info("Appointment completed", zap.Int64("appointment_id", a.ID))
	return StatusChange{
		ID:           a.ID,
		Status:       model.AppointmentStatusCompleted,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
	}, nil
}

// RetryPayment заново запрашивает ссылку на оплату
func (s *AppointmentService) RetryPayment(ctx context.Context, a model.Appointment, viewer Viewer) (string, error) {
	if !Allowed(a, viewer, ActionPay) {
		return "", ErrActionNotAllowed
	}
	return requestPaymentURL(ctx, s.client, a.ID)
}

// Delete удаляет запись (только админ)
func (s *AppointmentService) Delete(ctx context.Context, a model.Appointment, viewer Viewer) error {
	if !Allowed(a, viewer, ActionDelete) {
		return ErrActionNotAllowed
	}

	if err := s.client.DeleteAppointment(ctx, a.ID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.logger.Info("Appointment deleted", zap.Int64("appointment_id", a.ID))
	return nil
}

func requestPaymentURL(ctx context.Context, client *backend.Client, appointmentID int64) (string, error) {
	resp, err := client.CreatePaymentURL(ctx, appointmentID)
	if err != nil {
		return "", fmt.Errorf("create payment url: %w", err)
	}
	if strings.TrimSpace(resp.URL) == "" {
		return "", ErrNoPaymentURL
	}
	return resp.URL, nil
}

// sortNewestFirst сортирует по времени создания, затем по ID по убыванию
func sortNewestFirst(list []model.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		ci, okI := list[i].Created()
		cj, okJ := list[j].Created()
		if okI && okJ && !ci.Equal(cj) {
			return ci.After(cj)
		}
		return list[i].ID > list[j].ID
	})
}

// Board локальная копия списка записей одного экрана
type Board struct {
	items []model.Appointment
}

func NewBoard(items []model.Appointment) *Board {
	copied := make([]model.Appointment, len(items))
	copy(copied, items)
	return &Board{items: copied}
}

// Items копия записей в исходном порядке
func (b *Board) Items() []model.Appointment {
	items := make([]model.Appointment, len(b.items))
	copy(items, b.items)
	return items
}

// Find ищет запись по ID
func (b *Board) Find(id int64) (model.Appointment, bool) {
	for _, a := range b.items {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// Apply заменяет статус, диагноз и рецепт записи значениями из change
func (b *Board) Apply(change StatusChange) bool {
	for i := range b.items {
		if b.items[i].ID == change.ID {
			b.items[i].Status = change.Status
			b.items[i].Diagnosis = change.Diagnosis
			b.items[i].Prescription = change.Prescription
			return true
		}
	}
	return false
}

// Remove убирает запись после удаления
func (b *Board) Remove(id int64) bool {
	for i := range b.items {
		if b.items[i].ID == id {
			items := make([]model.Appointment, 0, len(b.items)-1)
			items = append(items, b.items[:i]...)
			b.items = append(items, b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Columns группирует записи по статусам для доски процесса
func (b *Board) Columns(statuses ...model.AppointmentStatus) map[model.AppointmentStatus][]model.Appointment {
	columns := make(map[model.AppointmentStatus][]model.Appointment, len(statuses))
	for _, status := range statuses {
		columns[status] = nil
	}
	for _, a := range b.items {
		if _, ok := columns[a.Status]; ok {
			columns[a.Status] = append(columns[a.Status], a)
		}
	}
	return columns
}
