package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

// AuthService вход, регистрация и восстановление пароля
type AuthService struct {
	client       *backend.Client
	sessions     *session.Store
	captchaToken string
	logger       *zap.Logger
}

func NewAuthService(client *backend.Client, sessions *session.Store, captchaToken string, logger *zap.Logger) *AuthService {
	return &AuthService{
		client:       client,
		sessions:     sessions,
		captchaToken: captchaToken,
		logger:       logger,
	}
}

// Login проверяет учётные данные в backend и открывает сессию чата
func (s *AuthService) Login(ctx context.Context, telegramID int64, email, password string) (*session.Session, error) {
	req := model.AuthRequest{
		Email:           strings.TrimSpace(email),
		Password:        password,
		CaptchaResponse: s.captchaToken,
	}
	if err := Validate(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess, err := s.sessions.Login(ctx, telegramID, resp.AccessToken, resp.User)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", resp.User.ID),
		zap.Strings("roles", resp.User.Roles))

	return sess, nil
}

// Logout закрывает сессию чата
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Logout(ctx, telegramID); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Register создаёт аккаунт пациента
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if err := Validate(req); err != nil {
		return "", err
	}

	msg, err := s.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.logger.Info("User registered", zap.String("email", req.Email))
	return msg, nil
}

// ForgotPassword запрашивает письмо со ссылкой на сброс пароля
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", &ValidationError{Field: "email", Tag: "email"}
	}

	msg, err := s.client.ForgotPassword(ctx, email)
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

// ResetPassword устанавливает новый пароль по токену из письма
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	req := model.ResetPasswordRequest{Token: strings.TrimSpace(token), NewPassword: newPassword}
	if err := Validate(req); err != nil {
		return "", err
	}

	msg, err := s.client.ResetPassword(ctx, req)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return msg, nil
}
