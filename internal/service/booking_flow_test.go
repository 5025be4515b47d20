package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func at(day string, hour, minute int) time.Time {
	d, _ := model.ParseDate(day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local)
}

func slotIDs(slots []model.ScheduleSlot) []int64 {
	ids := make([]int64, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSelectableSlotsHidesStartedSlotsToday(t *testing.T) {
	slots := []model.ScheduleSlot{
		{ID: 1, TimeSlot: "08:00 - 08:30", Status: model.SlotStatusAvailable},
		{ID: 2, TimeSlot: "08:30 - 09:00", Status: model.SlotStatusAvailable},
		{ID: 3, TimeSlot: "09:00 - 09:30", Status: model.SlotStatusBooked},
	}

	now := at("2025-06-10", 8, 15)

	got := SelectableSlots(slots, at("2025-06-10", 0, 0), now)
	assert.Equal(t, []int64{2}, slotIDs(got))

	got = SelectableSlots(slots, at("2025-06-11", 0, 0), now)
	assert.Equal(t, []int64{1, 2}, slotIDs(got))

	got = SelectableSlots(slots, at("2025-06-10", 0, 0), at("2025-06-10", 8, 30))
	assert.Empty(t, got)
}

func newTestBookingService(t *testing.T, now time.Time) (*fakeBackend, *BookingService) {
	fb, client := newFakeBackend(t)
	return fb, NewBookingService(client, func() time.Time { return now }, zap.NewNop())
}

func readyFlow(t *testing.T, fb *fakeBackend, svc *BookingService) *BookingFlow {
	t.Helper()

	fb.handle(http.MethodGet, "/public/schedules", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("doctorId"))
		assert.Equal(t, "2025-06-10", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`[
			{"id":11,"date":"2025-06-10","timeSlot":"09:00-09:30","status":"AVAILABLE"},
			{"id":12,"date":"2025-06-10","timeSlot":"09:30-10:00","status":"AVAILABLE"}
		]`))
	})

	flow := &BookingFlow{Doctor: model.Doctor{DoctorID: 3, FullName: "Nguyễn Văn Thái"}}
	require.NoError(t, svc.SelectDate(context.Background(), flow, at("2025-06-10", 0, 0)))
	assert.Equal(t, StepSlotsLoaded, flow.Step)

	selectable := svc.Selectable(flow)
	require.Len(t, selectable, 2)
	require.NoError(t, svc.SelectSlot(flow, selectable[0].ID))
	assert.Equal(t, StepSlotSelected, flow.Step)
	assert.False(t, flow.CanSubmit())

	require.NoError(t, flow.EnterReason("Đau đầu"))
	assert.True(t, flow.CanSubmit())

	fb.reset()
	return flow
}

func TestBookingSubmitMakesTwoSequentialCalls(t *testing.T) {
	fb, svc := newTestBookingService(t, at("2025-06-09", 10, 0))
	flow := readyFlow(t, fb, svc)

	var booked model.BookingRequest
	fb.handle(http.MethodPost, "/appointments/book", func(w http.ResponseWriter, r *http.Request) {
		decodeBody(t, r, &booked)
		_, _ = w.Write([]byte(`{"id":77,"status":"PENDING_PAYMENT"}`))
	})
	fb.handle(http.MethodGet, "/payment/create-payment", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "77", r.URL.Query().Get("appointmentId"))
		_, _ = w.Write([]byte(`{"url":"https://sandbox.vnpayment.vn/pay?id=77"}`))
	})

	url, err := svc.Submit(context.Background(), flow)
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.vnpayment.vn/pay?id=77", url)
	assert.Equal(t, []string{"POST /appointments/book", "GET /payment/create-payment"}, fb.Calls())
	assert.Equal(t, model.BookingRequest{DoctorID: 3, ScheduleID: 11, Reason: "Đau đầu"}, booked)
	assert.Equal(t, StepRedirected, flow.Step)
	assert.Equal(t, int64(77), flow.AppointmentID)
}

func TestBookingSubmitWithoutPaymentURL(t *testing.T) {
	fb, svc := newTestBookingService(t, at("2025-06-09", 10, 0))
	flow := readyFlow(t, fb, svc)

	fb.respondJSON(http.MethodPost, "/appointments/book", `{"id":77}`)
	fb.respondJSON(http.MethodGet, "/payment/create-payment", `{}`)

	url, err := svc.Submit(context.Background(), flow)
	require.ErrorIs(t, err, ErrNoPaymentURL)

	assert.Empty(t, url)
	assert.Empty(t, flow.PaymentURL)
	assert.Equal(t, []string{"POST /appointments/book", "GET /payment/create-payment"}, fb.Calls())
	assert.Equal(t, StepSlotsLoaded, flow.Step)
	assert.Equal(t, int64(77), flow.AppointmentID)
}

func TestBookingSubmitBookingRejected(t *testing.T) {
	fb, svc := newTestBookingService(t, at("2025-06-09", 10, 0))
	flow := readyFlow(t, fb, svc)

	fb.handle(http.MethodPost, "/appointments/book", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Khung giờ này đã có người đặt"}`))
	})

	_, err := svc.Submit(context.Background(), flow)
	require.Error(t, err)

	assert.Equal(t, []string{"POST /appointments/book"}, fb.Calls())
	assert.Equal(t, StepSlotsLoaded, flow.Step)
	assert.Zero(t, flow.AppointmentID)
}

func TestBookingSubmitRequiresReason(t *testing.T) {
	fb, svc := newTestBookingService(t, at("2025-06-09", 10, 0))
	flow := &BookingFlow{Doctor: model.Doctor{DoctorID: 3}, Step: StepSlotSelected, SlotID: 11}

	assert.ErrorIs(t, flow.EnterReason("   "), ErrReasonRequired)

	_, err := svc.Submit(context.Background(), flow)
	assert.ErrorIs(t, err, ErrBookingNotReady)
	assert.Empty(t, fb.Calls())
}

func TestBookingRejectsPastDateAndStaleSlot(t *testing.T) {
	fb, svc := newTestBookingService(t, at("2025-06-10", 9, 10))
	flow := &BookingFlow{Doctor: model.Doctor{DoctorID: 3}}

	assert.ErrorIs(t, svc.SelectDate(context.Background(), flow, at("2025-06-09", 0, 0)), ErrDateInPast)
	assert.Empty(t, fb.Calls())

	fb.respondJSON(http.MethodGet, "/public/schedules", `[
		{"id":11,"timeSlot":"09:00-09:30","status":"AVAILABLE"},
		{"id":12,"timeSlot":"09:30-10:00","status":"AVAILABLE"}
	]`)
	require.NoError(t, svc.SelectDate(context.Background(), flow, at("2025-06-10", 0, 0)))

	assert.ErrorIs(t, svc.SelectSlot(flow, 11), ErrSlotUnavailable)
	assert.NoError(t, svc.SelectSlot(flow, 12))
}
