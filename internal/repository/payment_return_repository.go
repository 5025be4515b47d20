package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/repository/base"
)

// PaymentReturnRepository хранит, какой чат запросил ссылку на оплату
type PaymentReturnRepository struct {
	*base.Repository
}

func NewPaymentReturnRepository(pool *pgxpool.Pool) *PaymentReturnRepository {
	return &PaymentReturnRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет выданную ссылку
func (r *PaymentReturnRepository) Create(ctx context.Context, ret *model.PaymentReturn) error {
	query := `
		INSERT INTO payment_returns (ref, appointment_id, telegram_id, chat_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query,
		ret.Ref,
		ret.AppointmentID,
		ret.TelegramID,
		ret.ChatID,
		ret.Status,
	).Scan(&ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment return: %w", err)
	}

	return nil
}

// GetOpenByAppointment последняя ссылка по записи без подтверждённой оплаты
func (r *PaymentReturnRepository) GetOpenByAppointment(ctx context.Context, appointmentID int64) (*model.PaymentReturn, error) {
	query := `
		SELECT ref, appointment_id, telegram_id, chat_id, status, created_at, resolved_at
		FROM payment_returns
		WHERE appointment_id = $1 AND status <> $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var ret model.PaymentReturn
	err := r.QueryRow(ctx, query, appointmentID, model.PaymentReturnSuccess).Scan(
		&ret.Ref,
		&ret.AppointmentID,
		&ret.TelegramID,
		&ret.ChatID,
		&ret.Status,
		&ret.CreatedAt,
		&ret.ResolvedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment return: %w", err)
	}

	return &ret, nil
}

// Resolve отмечает результатом все ссылки по записи без подтверждённой оплаты
func (r *PaymentReturnRepository) Resolve(ctx context.Context, appointmentID int64, status model.PaymentReturnStatus) (int64, error) {
	query := `
		UPDATE payment_returns
		SET status = $2, resolved_at = NOW()
		WHERE appointment_id = $1 AND status <> $3
	`

	affected, err := r.ExecAffected(ctx, query, appointmentID, status, model.PaymentReturnSuccess)
	if err != nil {
		return 0, fmt.Errorf("resolve payment return: %w", err)
	}
	return affected, nil
}
