package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentReturnStatus результат возврата с платёжной страницы
type PaymentReturnStatus string

const (
	PaymentReturnPending PaymentReturnStatus = "pending"
	PaymentReturnSuccess PaymentReturnStatus = "success"
	PaymentReturnFailed  PaymentReturnStatus = "failed"
)

// PaymentReturn связывает выданную ссылку на оплату с чатом, который её запросил
type PaymentReturn struct {
	Ref           uuid.UUID           `json:"ref"`
	AppointmentID int64               `json:"appointment_id"`
	TelegramID    int64               `json:"telegram_id"`
	ChatID        int64               `json:"chat_id"`
	Status        PaymentReturnStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	ResolvedAt    *time.Time          `json:"resolved_at,omitempty"`
}
