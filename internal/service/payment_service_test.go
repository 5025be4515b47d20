package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

type fakeReturns struct {
	rows []*model.PaymentReturn
}

func (f *fakeReturns) Create(_ context.Context, ret *model.PaymentReturn) error {
	copied := *ret
	f.rows = append(f.rows, &copied)
	return nil
}

func (f *fakeReturns) GetOpenByAppointment(_ context.Context, appointmentID int64) (*model.PaymentReturn, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if row := f.rows[i]; row.AppointmentID == appointmentID && row.Status != model.PaymentReturnSuccess {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReturns) Resolve(_ context.Context, appointmentID int64, status model.PaymentReturnStatus) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.AppointmentID == appointmentID && row.Status != model.PaymentReturnSuccess {
			row.Status = status
			n++
		}
	}
	return n, nil
}

type fakeSessions map[int64]*session.Session

func (f fakeSessions) Get(telegramID int64) *session.Session {
	return f[telegramID]
}

type fakeHistory struct {
	list   []model.Appointment
	err    error
	tokens []string
}

func (f *fakeHistory) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	f.tokens = append(f.tokens, backend.TokenFrom(ctx))
	return f.list, f.err
}

func newTestPaymentService(t *testing.T, status model.AppointmentStatus) (*fakeReturns, *fakeHistory, *PaymentService) {
	t.Helper()
	returns := &fakeReturns{}
	history := &fakeHistory{list: []model.Appointment{{ID: 42, Status: status}}}
	sessions := fakeSessions{7: {TelegramID: 7, AccessToken: "patient-token"}}
	svc := NewPaymentService(returns, sessions, history, zap.NewNop())

	_, err := svc.Track(context.Background(), 42, 7, 700)
	require.NoError(t, err)
	return returns, history, svc
}

func TestPaymentResolveChecksAppointmentAsTrackedChat(t *testing.T) {
	returns, history, svc := newTestPaymentService(t, model.AppointmentStatusConfirmed)

	ret, err := svc.Resolve(context.Background(), 42, true)
	require.NoError(t, err)
	require.NotNil(t, ret)

	assert.Equal(t, int64(700), ret.ChatID)
	assert.Equal(t, model.PaymentReturnSuccess, returns.rows[0].Status)
	assert.Equal(t, []string{"patient-token"}, history.tokens)
}

func TestPaymentResolveRejectsUnpaidSuccess(t *testing.T) {
	returns, _, svc := newTestPaymentService(t, model.AppointmentStatusPendingPayment)

	ret, err := svc.Resolve(context.Background(), 42, true)

	assert.ErrorIs(t, err, ErrPaymentMismatch)
	assert.Nil(t, ret)
	assert.Equal(t, model.PaymentReturnPending, returns.rows[0].Status)
}

func TestPaymentResolveUnverifiable(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		returns, _, svc := newTestPaymentService(t, model.AppointmentStatusConfirmed)
		svc.sessions = fakeSessions{}

		_, err := svc.Resolve(context.Background(), 42, true)
		assert.ErrorIs(t, err, ErrPaymentUnverified)
		assert.Equal(t, model.PaymentReturnPending, returns.rows[0].Status)
	})

	t.Run("backend error", func(t *testing.T) {
		returns, history, svc := newTestPaymentService(t, model.AppointmentStatusConfirmed)
		history.err = errors.New("timeout")

		_, err := svc.Resolve(context.Background(), 42, true)
		assert.ErrorIs(t, err, ErrPaymentUnverified)
		assert.Equal(t, model.PaymentReturnPending, returns.rows[0].Status)
	})

	t.Run("appointment missing", func(t *testing.T) {
		_, history, svc := newTestPaymentService(t, model.AppointmentStatusConfirmed)
		history.list = nil

		_, err := svc.Resolve(context.Background(), 42, true)
		assert.ErrorIs(t, err, ErrPaymentUnverified)
	})
}

func TestPaymentFailureThenPaidSuccess(t *testing.T) {
	returns, history, svc := newTestPaymentService(t, model.AppointmentStatusPendingPayment)
	ctx := context.Background()

	ret, err := svc.Resolve(ctx, 42, false)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, model.PaymentReturnFailed, ret.Status)

	// повторная неудача уже сообщена
	ret, err = svc.Resolve(ctx, 42, false)
	require.NoError(t, err)
	assert.Nil(t, ret)

	history.list[0].Status = model.AppointmentStatusPending
	ret, err = svc.Resolve(ctx, 42, true)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, model.PaymentReturnSuccess, returns.rows[0].Status)

	ret, err = svc.Resolve(ctx, 42, true)
	require.NoError(t, err)
	assert.Nil(t, ret)
}

func TestPaymentResolveUntracked(t *testing.T) {
	_, history, svc := newTestPaymentService(t, model.AppointmentStatusConfirmed)

	ret, err := svc.Resolve(context.Background(), 99, true)
	require.NoError(t, err)
	assert.Nil(t, ret)
	assert.Empty(t, history.tokens)
}
