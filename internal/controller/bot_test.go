package controller

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func buttonData(t *testing.T, ret *model.PaymentReturn) []string {
	t.Helper()
	_, kb := BuildPaymentNotice(ret, "")
	require.NotNil(t, kb)

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.CallbackData)
		}
	}
	return data
}

func TestPaymentNoticeSuccess(t *testing.T) {
	ret := &model.PaymentReturn{Ref: uuid.New(), AppointmentID: 42, Status: model.PaymentReturnSuccess}

	text, _ := BuildPaymentNotice(ret, "")
	assert.Contains(t, text, "#42")
	assert.Contains(t, text, "thành công")
	assert.Equal(t, []string{"/patient/appointments/refresh"}, buttonData(t, ret))
}

func TestPaymentNoticeFailureOffersRetry(t *testing.T) {
	ret := &model.PaymentReturn{Ref: uuid.New(), AppointmentID: 7, Status: model.PaymentReturnFailed}

	text, _ := BuildPaymentNotice(ret, "Bạn đã hủy giao dịch thanh toán.")
	assert.Contains(t, text, "#7")
	assert.Contains(t, text, "hủy giao dịch")
	assert.Equal(t, []string{"/patient/appointments/7/pay", "/patient/appointments/refresh"}, buttonData(t, ret))
}
