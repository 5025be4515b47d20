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

// UsersPageSize размер страницы списка пользователей
const UsersPageSize = 10

// UserService профили и управление пользователями
type UserService struct {
	client   *backend.Client
	sessions *session.Store
	logger   *zap.Logger
}

func NewUserService(client *backend.Client, sessions *session.Store, logger *zap.Logger) *UserService {
	return &UserService{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// MyProfile профиль текущего пользователя
func (s *UserService) MyProfile(ctx context.Context) (*model.User, error) {
	user, err := s.client.MyProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateMyProfile обновляет профиль и заменяет профиль в сессии целиком
func (s *UserService) UpdateMyProfile(ctx context.Context, telegramID int64, req model.ProfileUpdateRequest) (*model.User, error) {
	sess := s.sessions.Get(telegramID)
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Address = strings.TrimSpace(req.Address)
	if err := Validate(req); err != nil {
		return nil, err
	}

	user, err := s.client.UpdateMyProfile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if len(user.Roles) == 0 {
		user.Roles = sess.User.Roles
	}

	if _, err := s.sessions.Login(ctx, telegramID, sess.AccessToken, *user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.Int64("telegram_id", telegramID), zap.Int64("user_id", user.ID))
	return user, nil
}

// DoctorProfile профиль врача текущей сессии
func (s *UserService) DoctorProfile(ctx context.Context) (*model.Doctor, error) {
	doctor, err := s.client.MyDoctorProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get doctor profile: %w", err)
	}
	return doctor, nil
}

// UpdateDoctorProfile обновляет описание и учёную степень врача
func (s *UserService) UpdateDoctorProfile(ctx context.Context, req model.DoctorSelfUpdateRequest) (*model.Doctor, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.AcademicDegree = strings.TrimSpace(req.AcademicDegree)
	if err := Validate(req); err != nil {
		return nil, err
	}

	doctor, err := s.client.UpdateMyDoctorProfile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("update doctor profile: %w", err)
	}
	return doctor, nil
}

// Users страница пользователей с серверным поиском
func (s *UserService) Users(ctx context.Context, page int, keyword, role string) (*model.UserPage, error) {
	if page < 0 {
		page = 0
	}
	result, err := s.client.Users(ctx, backend.UserQuery{
		Page:    page,
		Size:    UsersPageSize,
		Keyword: strings.TrimSpace(keyword),
		Role:    role,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

// User карточка пользователя
func (s *UserService) User(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.client.User(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// CreateUser создаёт пользователя; пароль обязателен
func (s *UserService) CreateUser(ctx context.Context, req model.UserRequest) (*model.User, error) {
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Tag: "required"}
	}
	if err := checkUserRequest(&req); err != nil {
		return nil, err
	}

	user, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("User created", zap.Int64("user_id", user.ID), zap.Strings("roles", user.Roles))
	return user, nil
}

// UpdateUser сохраняет пользователя целиком, включая роли и дополнительные права
func (s *UserService) UpdateUser(ctx context.Context, id int64, req model.UserRequest) (*model.User, error) {
	if err := checkUserRequest(&req); err != nil {
		return nil, err
	}

	user, err := s.client.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.logger.Info("User updated", zap.Int64("user_id", id), zap.Strings("roles", req.Roles))
	return user, nil
}

// Permissions справочник дополнительных прав
func (s *UserService) Permissions(ctx context.Context) ([]string, error) {
	list, err := s.client.Permissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return list, nil
}

func checkUserRequest(req *model.UserRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Address = strings.TrimSpace(req.Address)
	if len(req.Roles) == 0 {
		return ErrNoRoles
	}
	if req.ExtraPermissions == nil {
		req.ExtraPermissions = []string{}
	}
	return Validate(*req)
}

// DeleteUser удаляет пользователя
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
