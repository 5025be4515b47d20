package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/clinic_bot/internal/repository/base"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

// SessionRepository хранит токен и профиль чата в таблице sessions
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Save записывает токен и профиль одним UPSERT
func (r *SessionRepository) Save(ctx context.Context, rec session.Record) error {
	query := `
		INSERT INTO sessions (telegram_id, access_token, user_profile, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (telegram_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    user_profile = EXCLUDED.user_profile,
		    updated_at = NOW()
	`

	if _, err := r.ExecAffected(ctx, query, rec.TelegramID, rec.AccessToken, rec.UserProfile); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete удаляет токен и профиль одной командой
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LoadAll читает все сессии
func (r *SessionRepository) LoadAll(ctx context.Context) ([]session.Record, error) {
	query := `
		SELECT telegram_id, access_token, user_profile
		FROM sessions
		ORDER BY telegram_id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var records []session.Record
	for rows.Next() {
		var rec session.Record
		if err := rows.Scan(&rec.TelegramID, &rec.AccessToken, &rec.UserProfile); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return records, nil
}
