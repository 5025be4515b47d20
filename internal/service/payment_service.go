package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

var (
	// ErrPaymentUnverified результат оплаты нельзя проверить в backend
	ErrPaymentUnverified = errors.New("payment result cannot be verified")
	// ErrPaymentMismatch страница возврата расходится со статусом записи в backend
	ErrPaymentMismatch = errors.New("payment result does not match appointment status")
)

// PaymentReturnRepository хранилище выданных ссылок на оплату
type PaymentReturnRepository interface {
	Create(ctx context.Context, ret *model.PaymentReturn) error
	GetOpenByAppointment(ctx context.Context, appointmentID int64) (*model.PaymentReturn, error)
	Resolve(ctx context.Context, appointmentID int64, status model.PaymentReturnStatus) (int64, error)
}

// SessionReader сессия чата по Telegram ID
type SessionReader interface {
	Get(telegramID int64) *session.Session
}

// PatientAppointments записи пациента, от имени которого выдана ссылка
type PatientAppointments interface {
	MyAppointments(ctx context.Context) ([]model.Appointment, error)
}

// PaymentService связывает возврат с платёжной страницы с чатом
type PaymentService struct {
	repo         PaymentReturnRepository
	sessions     SessionReader
	appointments PatientAppointments
	logger       *zap.Logger
}

func NewPaymentService(repo PaymentReturnRepository, sessions SessionReader, appointments PatientAppointments, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		repo:         repo,
		sessions:     sessions,
		appointments: appointments,
		logger:       logger,
	}
}

// Track запоминает чат, которому выдана ссылка на оплату записи
func (s *PaymentService) Track(ctx context.Context, appointmentID, telegramID, chatID int64) (*model.PaymentReturn, error) {
	ret := &model.PaymentReturn{
		Ref:           uuid.New(),
		AppointmentID: appointmentID,
		TelegramID:    telegramID,
		ChatID:        chatID,
		Status:        model.PaymentReturnPending,
	}
	if err := s.repo.Create(ctx, ret); err != nil {
		return nil, fmt.Errorf("track payment: %w", err)
	}

	s.logger.Info("Payment link issued",
		zap.Int64("appointment_id", appointmentID),
		zap.Int64("chat_id", chatID),
		zap.String("ref", ret.Ref.String()))
	return ret, nil
}

// Resolve отмечает результат оплаты, если его подтверждает статус записи в backend.
// nil без ошибки: ссылку выдавал не бот или результат уже обработан.
// Неподтверждённый возврат оставляет ссылку открытой.
func (s *PaymentService) Resolve(ctx context.Context, appointmentID int64, success bool) (*model.PaymentReturn, error) {
	ret, err := s.repo.GetOpenByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if ret == nil {
		return nil, nil
	}
	// о неудаче уже сообщили; открытой ссылка остаётся только для успеха
	if ret.Status == model.PaymentReturnFailed && !success {
		return nil, nil
	}

	paid, err := s.paid(ctx, ret)
	if err != nil {
		return nil, err
	}
	if paid != success {
		s.logger.Warn("Payment return does not match appointment status",
			zap.Int64("appointment_id", appointmentID),
			zap.Bool("claimed_success", success),
			zap.Bool("paid", paid))
		return nil, ErrPaymentMismatch
	}

	status := model.PaymentReturnFailed
	if success {
		status = model.PaymentReturnSuccess
	}
	if _, err := s.repo.Resolve(ctx, appointmentID, status); err != nil {
		return nil, fmt.Errorf("resolve payment: %w", err)
	}
	ret.Status = status

	s.logger.Info("Payment return resolved",
		zap.Int64("appointment_id", appointmentID),
		zap.String("status", string(status)))
	return ret, nil
}

// paid читает запись от имени чата, запросившего оплату
func (s *PaymentService) paid(ctx context.Context, ret *model.PaymentReturn) (bool, error) {
	sess := s.sessions.Get(ret.TelegramID)
	if sess == nil {
		return false, fmt.Errorf("%w: chat %d is logged out", ErrPaymentUnverified, ret.TelegramID)
	}

	list, err := s.appointments.MyAppointments(backend.WithToken(ctx, sess.AccessToken))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPaymentUnverified, err)
	}
	for _, a := range list {
		if a.ID == ret.AppointmentID {
			return isPaid(a.Status), nil
		}
	}
	return false, fmt.Errorf("%w: appointment %d not found", ErrPaymentUnverified, ret.AppointmentID)
}

// isPaid запись прошла оплату: ждёт приёма, принята или уже закрыта
func isPaid(status model.AppointmentStatus) bool {
	switch status {
	case model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusRefundPending:
		return true
	default:
		return false
	}
}
