package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type resolveCall struct {
	appointmentID int64
	success       bool
}

type fakePayments struct {
	calls   []resolveCall
	tracked map[int64]int64 // appointment -> chat
	err     error
}

func (f *fakePayments) Resolve(_ context.Context, appointmentID int64, success bool) (*model.PaymentReturn, error) {
	f.calls = append(f.calls, resolveCall{appointmentID, success})
	if f.err != nil {
		return nil, f.err
	}
	chatID, ok := f.tracked[appointmentID]
	if !ok {
		return nil, nil
	}
	status := model.PaymentReturnFailed
	if success {
		status = model.PaymentReturnSuccess
	}
	return &model.PaymentReturn{Ref: uuid.New(), AppointmentID: appointmentID, ChatID: chatID, Status: status}, nil
}

type notice struct {
	ret    *model.PaymentReturn
	reason string
}

type fakeNotifier struct {
	notices []notice
}

func (f *fakeNotifier) NotifyPaymentResult(_ context.Context, ret *model.PaymentReturn, reason string) error {
	f.notices = append(f.notices, notice{ret, reason})
	return nil
}

func newTestServer(payments *fakePayments, notifier *fakeNotifier) *HTTPServer {
	return NewHTTPServer(":0", payments, notifier, "clinic_bot", zap.NewNop())
}

func get(t *testing.T, s *HTTPServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(&fakePayments{}, &fakeNotifier{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPaymentSuccessNotifiesTrackedChat(t *testing.T) {
	payments := &fakePayments{tracked: map[int64]int64{42: 1001}}
	notifier := &fakeNotifier{}

	rec := get(t, newTestServer(payments, notifier), "/payment-success?id=42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#42")
	assert.Contains(t, rec.Body.String(), "https://t.me/clinic_bot")

	require.Equal(t, []resolveCall{{42, true}}, payments.calls)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, int64(1001), notifier.notices[0].ret.ChatID)
	assert.Equal(t, model.PaymentReturnSuccess, notifier.notices[0].ret.Status)
}

func TestPaymentFailedUsesGatewayReference(t *testing.T) {
	payments := &fakePayments{tracked: map[int64]int64{7: 55}}
	notifier := &fakeNotifier{}

	rec := get(t, newTestServer(payments, notifier), "/payment-failed?vnp_TxnRef=7&vnp_ResponseCode=24")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hủy giao dịch")

	require.Equal(t, []resolveCall{{7, false}}, payments.calls)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, PaymentFailureReason("24"), notifier.notices[0].reason)
}

func TestPaymentReturnForUntrackedAppointment(t *testing.T) {
	payments := &fakePayments{tracked: map[int64]int64{}}
	notifier := &fakeNotifier{}

	rec := get(t, newTestServer(payments, notifier), "/payment-success?id=9")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Đang xác nhận")
	assert.Len(t, payments.calls, 1)
	assert.Empty(t, notifier.notices)
}

func TestPaymentSuccessPathWithFailureCodeIsFailure(t *testing.T) {
	payments := &fakePayments{tracked: map[int64]int64{42: 1001}}
	notifier := &fakeNotifier{}

	rec := get(t, newTestServer(payments, notifier), "/payment-success?vnp_TxnRef=42&vnp_ResponseCode=24")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "thất bại")
	require.Equal(t, []resolveCall{{42, false}}, payments.calls)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, PaymentFailureReason("24"), notifier.notices[0].reason)
}

func TestPaymentReturnStillRendersOnResolveError(t *testing.T) {
	payments := &fakePayments{err: errors.New("db down")}
	notifier := &fakeNotifier{}

	rec := get(t, newTestServer(payments, notifier), "/payment-success?id=3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notifier.notices)
}

func TestPaymentReturnRejectsBadID(t *testing.T) {
	payments := &fakePayments{}

	for _, target := range []string{"/payment-success", "/payment-success?id=abc", "/payment-failed?id=-1"} {
		rec := get(t, newTestServer(payments, &fakeNotifier{}), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Empty(t, payments.calls)
}

func TestPaymentFailureReason(t *testing.T) {
	assert.Contains(t, PaymentFailureReason("51"), "số dư")
	assert.Contains(t, PaymentFailureReason("99"), "không thành công")
}
