package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// ErrEmptyToken логин без токена
var ErrEmptyToken = errors.New("empty access token")

// Record сохранённая строка сессии: ровно токен и профиль
type Record struct {
	TelegramID  int64
	AccessToken string
	UserProfile []byte
}

// Repository постоянное хранилище сессий
type Repository interface {
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, telegramID int64) error
	LoadAll(ctx context.Context) ([]Record, error)
}

// Listener получает новое значение сессии; nil означает выход
type Listener func(telegramID int64, s *Session)

// Store сессии всех чатов. Login и Logout единственные точки изменения.
type Store struct {
	// writeMu держит запись в repo и подмену в памяти одной операцией
	writeMu   sync.Mutex
	mu        sync.RWMutex
	sessions  map[int64]*Session
	repo      Repository
	logger    *zap.Logger
	listeners []Listener
}

// NewStore создаёт хранилище
func NewStore(repo Repository, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		repo:     repo,
		logger:   logger,
	}
}

// Hydrate загружает все сохранённые сессии при старте
func (s *Store) Hydrate(ctx context.Context) error {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	loaded := make(map[int64]*Session, len(records))
	for _, rec := range records {
		sess, err := fromRecord(rec)
		if err != nil {
			s.logger.Warn("Skipping broken session",
				zap.Int64("telegram_id", rec.TelegramID),
				zap.Error(err))
			continue
		}
		loaded[rec.TelegramID] = sess
	}

	s.mu.Lock()
	s.sessions = loaded
	s.mu.Unlock()

	s.logger.Info("Sessions restored", zap.Int("count", len(loaded)))
	return nil
}

// Get текущая сессия или nil
func (s *Store) Get(telegramID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[telegramID]
}

// Login сохраняет токен и профиль одной записью и подменяет сессию целиком.
// Если запись не удалась, текущая сессия остаётся прежней.
func (s *Store) Login(ctx context.Context, telegramID int64, token string, user model.User) (*Session, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	rec := Record{TelegramID: telegramID, AccessToken: token, UserProfile: profile}
	sess := newSession(telegramID, token, user)

	s.writeMu.Lock()
	if err := s.repo.Save(ctx, rec); err != nil {
		s.writeMu.Unlock()
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.sessions[telegramID] = sess
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.notify(telegramID, sess)
	return sess, nil
}

// Logout удаляет токен и профиль одной операцией
func (s *Store) Logout(ctx context.Context, telegramID int64) error {
	s.writeMu.Lock()
	if err := s.repo.Delete(ctx, telegramID); err != nil {
		s.writeMu.Unlock()
		return fmt.Errorf("delete session: %w", err)
	}
	s.mu.Lock()
	_, existed := s.sessions[telegramID]
	delete(s.sessions, telegramID)
	s.mu.Unlock()
	s.writeMu.Unlock()

	if existed {
		s.notify(telegramID, nil)
	}
	return nil
}

// Subscribe регистрирует получателя изменений
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Expired список чатов, у которых истёк токен
func (s *Store) Expired(now time.Time) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Count количество активных сессий
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) notify(telegramID int64, sess *Session) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(telegramID, sess)
	}
}

func newSession(telegramID int64, token string, user model.User) *Session {
	sess := &Session{
		TelegramID:  telegramID,
		AccessToken: token,
		User:        user,
	}
	if exp, ok := TokenExpiry(token); ok {
		sess.ExpiresAt = exp
	}
	return sess
}

func fromRecord(rec Record) (*Session, error) {
	if rec.AccessToken == "" {
		return nil, ErrEmptyToken
	}
	var user model.User
	if err := json.Unmarshal(rec.UserProfile, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return newSession(rec.TelegramID, rec.AccessToken, user), nil
}
