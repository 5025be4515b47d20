package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiringSessions сессии, которые можно проверить на истечение токена
type ExpiringSessions interface {
	Expired(now time.Time) []int64
	Logout(ctx context.Context, telegramID int64) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions ExpiringSessions
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sessions ExpiringSessions, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runSessionSweepTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSessionSweepTask периодически удаляет сессии с истёкшим токеном
func (s *Scheduler) runSessionSweepTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.SweepSessions(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweep task cancelled")
			return
		}
	}
}

// SweepSessions выполняет выход для всех сессий с истёкшим токеном.
// Возвращает число удалённых сессий.
func (s *Scheduler) SweepSessions(ctx context.Context) int {
	expired := s.sessions.Expired(s.now())
	if len(expired) == 0 {
		return 0
	}

	removed := 0
	for _, telegramID := range expired {
		if err := s.sessions.Logout(ctx, telegramID); err != nil {
			s.logger.Error("Failed to drop expired session",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
			continue
		}
		removed++
	}

	s.logger.Info("Expired sessions dropped",
		zap.Int("expired", len(expired)),
		zap.Int("removed", removed))
	return removed
}
