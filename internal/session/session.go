// Package session хранит авторизацию чатов: access token и профиль пользователя.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Session неизменяемый снимок авторизации одного Telegram пользователя.
// Любое изменение создаёт новый Session.
type Session struct {
	TelegramID  int64
	AccessToken string
	User        model.User
	ExpiresAt   time.Time
}

// HasRole проверяет роль пользователя сессии
func (s *Session) HasRole(role string) bool {
	return s != nil && s.User.HasRole(role)
}

// HasAnyRole проверяет наличие хотя бы одной из ролей
func (s *Session) HasAnyRole(roles ...string) bool {
	return s != nil && s.User.HasAnyRole(roles...)
}

// Expired true если у токена есть срок действия и он истёк
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TokenExpiry читает claim exp из JWT без проверки подписи.
// Подпись проверяет backend, боту нужен только срок жизни.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
