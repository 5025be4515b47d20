package backend

import (
	"context"
	"net/url"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Login POST /auth/login
func (c *Client) Login(ctx context.Context, req model.AuthRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.post(ctx, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register POST /auth/register, backend отвечает текстом подтверждения
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var message string
	if err := c.post(ctx, "/auth/register", nil, req, &message); err != nil {
		return "", err
	}
	return message, nil
}

// ForgotPassword POST /auth/forgot-password?email=
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var message string
	if err := c.post(ctx, "/auth/forgot-password", url.Values{"email": {email}}, nil, &message); err != nil {
		return "", err
	}
	return message, nil
}

// ResetPassword POST /auth/reset-password
func (c *Client) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (string, error) {
	var message string
	if err := c.post(ctx, "/auth/reset-password", nil, req, &message); err != nil {
		return "", err
	}
	return message, nil
}
