package app

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessions struct {
	expiry  map[int64]time.Time
	failFor int64
	logouts []int64
}

func (f *fakeSessions) Expired(now time.Time) []int64 {
	var ids []int64
	for id, exp := range f.expiry {
		if !now.Before(exp) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeSessions) Logout(_ context.Context, telegramID int64) error {
	if telegramID == f.failFor {
		return errors.New("db down")
	}
	f.logouts = append(f.logouts, telegramID)
	delete(f.expiry, telegramID)
	return nil
}

func TestSweepSessionsDropsOnlyExpired(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessions{expiry: map[int64]time.Time{
		1: now.Add(-time.Minute),
		2: now.Add(time.Hour),
		3: now,
	}}

	s := NewScheduler(sessions, time.Hour, zap.NewNop())
	s.now = func() time.Time { return now }

	assert.Equal(t, 2, s.SweepSessions(context.Background()))
	assert.Equal(t, []int64{1, 3}, sessions.logouts)
	assert.Contains(t, sessions.expiry, int64(2))
}

func TestSweepSessionsContinuesAfterFailure(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessions{
		expiry:  map[int64]time.Time{1: now.Add(-time.Hour), 2: now.Add(-time.Hour)},
		failFor: 1,
	}

	s := NewScheduler(sessions, time.Hour, zap.NewNop())
	s.now = func() time.Time { return now }

	assert.Equal(t, 1, s.SweepSessions(context.Background()))
	assert.Equal(t, []int64{2}, sessions.logouts)
}

func TestSweepSessionsNothingExpired(t *testing.T) {
	s := NewScheduler(&fakeSessions{expiry: map[int64]time.Time{}}, time.Hour, zap.NewNop())
	assert.Zero(t, s.SweepSessions(context.Background()))
}
