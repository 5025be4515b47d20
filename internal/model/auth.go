package model

// AuthRequest тело POST /auth/login
type AuthRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	CaptchaResponse string `json:"captchaResponse,omitempty"`
}

// AuthResponse ответ POST /auth/login
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// RegisterRequest тело POST /auth/register
type RegisterRequest struct {
	FullName    string `json:"fullName" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Birthday    string `json:"birthday" validate:"required,datetime=2006-01-02"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Address     string `json:"address,omitempty" validate:"max=500"`
}

// ResetPasswordRequest тело POST /auth/reset-password
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=100"`
}
