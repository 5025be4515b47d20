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

func cellStates(cells []GridCell) map[string]CellState {
	states := make(map[string]CellState, len(cells))
	for _, c := range cells {
		states[c.Slot.ID] = c.State
	}
	return states
}

func TestGridCellStates(t *testing.T) {
	p := &Publisher{
		DoctorID: 7,
		Date:     at("2025-06-10", 0, 0),
		Existing: []model.ScheduleSlot{
			{ID: 1, TimeSlot: "08:00", Status: model.SlotStatusAvailable},
			{ID: 2, TimeSlot: "08:30", Status: model.SlotStatusBooked},
		},
		Selected: map[string]bool{"10:00": true},
	}

	cells := Grid(p, at("2025-06-10", 9, 10))
	require.Len(t, cells, len(model.TimeSlots))

	states := cellStates(cells)
	assert.Equal(t, CellPublished, states["08:00"])
	assert.Equal(t, CellBooked, states["08:30"])
	assert.Equal(t, CellPast, states["09:00"])
	assert.Equal(t, CellFree, states["09:30"])
	assert.Equal(t, CellSelected, states["10:00"])
	assert.Equal(t, CellFree, states["16:30"])
}

func TestToggle(t *testing.T) {
	now := at("2025-06-10", 9, 10)
	p := &Publisher{
		Date:     at("2025-06-10", 0, 0),
		Existing: []model.ScheduleSlot{{TimeSlot: "13:30", Status: model.SlotStatusAvailable}},
		Selected: map[string]bool{},
	}

	assert.ErrorIs(t, p.Toggle("13:30", now), ErrSlotLocked)
	assert.ErrorIs(t, p.Toggle("08:00", now), ErrSlotLocked)
	assert.ErrorIs(t, p.Toggle("12:00", now), ErrSlotUnavailable)

	require.NoError(t, p.Toggle("14:00", now))
	require.NoError(t, p.Toggle("10:00", now))
	assert.Equal(t, []string{"10:00", "14:00"}, p.SelectedIDs())

	require.NoError(t, p.Toggle("14:00", now))
	assert.Equal(t, []string{"10:00"}, p.SelectedIDs())
}

func newTestScheduleService(t *testing.T, now time.Time) (*fakeBackend, *ScheduleService) {
	fb, client := newFakeBackend(t)
	return fb, NewScheduleService(client, func() time.Time { return now }, zap.NewNop())
}

func TestWorkingDaysLoadedPerMonth(t *testing.T) {
	fb, svc := newTestScheduleService(t, at("2025-06-09", 8, 0))

	var months []string
	fb.respondJSON(http.MethodGet, "/admin/doctors/7/schedules", `[]`)
	fb.handle(http.MethodGet, "/doctor/schedules/working-days", func(w http.ResponseWriter, r *http.Request) {
		months = append(months, r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(`["2025-06-12"]`))
	})

	ctx := context.Background()
	p, err := svc.Open(ctx, 7, "Nguyễn Văn Thái", at("2025-06-12", 0, 0))
	require.NoError(t, err)
	assert.True(t, p.IsWorkingDay(at("2025-06-12", 0, 0)))
	assert.False(t, p.IsWorkingDay(at("2025-06-13", 0, 0)))

	require.NoError(t, svc.SelectDate(ctx, p, at("2025-06-20", 0, 0)))
	assert.Equal(t, []string{"6"}, months)

	require.NoError(t, svc.SelectDate(ctx, p, at("2025-07-01", 0, 0)))
	assert.Equal(t, []string{"6", "7"}, months)

	require.NoError(t, svc.TurnMonth(ctx, p, 1))
	assert.Equal(t, []string{"6", "7", "8"}, months)
	assert.Equal(t, time.August, p.Month.Month())
}

func TestPublishSendsBatch(t *testing.T) {
	fb, svc := newTestScheduleService(t, at("2025-06-09", 8, 0))

	fb.respondJSON(http.MethodGet, "/admin/doctors/7/schedules", `[]`)
	fb.respondJSON(http.MethodGet, "/doctor/schedules/working-days", `[]`)

	ctx := context.Background()
	p, err := svc.Open(ctx, 7, "Nguyễn Văn Thái", at("2025-06-12", 0, 0))
	require.NoError(t, err)

	_, err = svc.Publish(ctx, p)
	assert.ErrorIs(t, err, ErrNothingSelected)

	now := svc.Now()
	require.NoError(t, p.Toggle("13:30", now))
	require.NoError(t, p.Toggle("08:00", now))

	var req model.ScheduleCreateRequest
	fb.handle(http.MethodPost, "/schedules", func(w http.ResponseWriter, r *http.Request) {
		decodeBody(t, r, &req)
		_, _ = w.Write([]byte(`[]`))
	})
	fb.respondJSON(http.MethodGet, "/admin/doctors/7/schedules", `[
		{"id":1,"timeSlot":"08:00","status":"AVAILABLE"},
		{"id":2,"timeSlot":"13:30","status":"AVAILABLE"}
	]`)
	fb.respondJSON(http.MethodGet, "/doctor/schedules/working-days", `["2025-06-12"]`)

	count, err := svc.Publish(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, model.ScheduleCreateRequest{DoctorID: 7, Date: "2025-06-12", TimeSlots: []string{"08:00", "13:30"}}, req)

	assert.Empty(t, p.SelectedIDs())
	states := cellStates(Grid(p, now))
	assert.Equal(t, CellPublished, states["08:00"])
	assert.Equal(t, CellPublished, states["13:30"])
	assert.True(t, p.IsWorkingDay(at("2025-06-12", 0, 0)))
}

func TestOpenRequiresDoctor(t *testing.T) {
	_, svc := newTestScheduleService(t, at("2025-06-09", 8, 0))
	_, err := svc.Open(context.Background(), 0, "", at("2025-06-12", 0, 0))
	assert.ErrorIs(t, err, ErrNoDoctor)
}

func TestMonthDays(t *testing.T) {
	days := MonthDays(at("2024-02-15", 0, 0))
	require.Len(t, days, 29)
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 29, days[28].Day())
}
