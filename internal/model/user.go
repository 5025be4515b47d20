package model

import "slices"

// Роли пользователей backend
const (
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
	RoleAdmin      = "ROLE_ADMIN"
	RoleDoctor     = "ROLE_DOCTOR"
	RolePatient    = "ROLE_PATIENT"
)

// Roles все известные роли в порядке убывания прав
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleDoctor, RolePatient}

// Gender значения пола, которые принимает backend
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// User профиль пользователя
type User struct {
	ID               int64    `json:"id"`
	ClinicID         *int64   `json:"clinicId,omitempty"`
	Email            string   `json:"email"`
	FullName         string   `json:"fullName"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
	Address          string   `json:"address,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	Birthday         string   `json:"birthday,omitempty"`
	IsActive         bool     `json:"isActive"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	Roles            []string `json:"roles"`
	ExtraPermissions []string `json:"extraPermissions,omitempty"`
}

// HasRole проверяет наличие роли
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// HasAnyRole проверяет наличие хотя бы одной из ролей
func (u *User) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin администратор или супер-администратор
func (u *User) IsAdmin() bool {
	return u.HasAnyRole(RoleAdmin, RoleSuperAdmin)
}

// UserPage страница списка пользователей
type UserPage struct {
	Content       []User `json:"content"`
	PageNo        int    `json:"pageNo"`
	PageSize      int    `json:"pageSize"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Last          bool   `json:"last"`
}

// ProfileUpdateRequest тело PUT /users/profile/me
type ProfileUpdateRequest struct {
	FullName    string `json:"fullName,omitempty" validate:"omitempty,min=2,max=255"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Birthday    string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UserRequest тело POST /admin/users и PUT /admin/users/{id}.
// Пустой пароль при обновлении оставляет прежний.
type UserRequest struct {
	FullName         string   `json:"fullName" validate:"required,min=2,max=255"`
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password,omitempty" validate:"omitempty,min=6,max=100"`
	PhoneNumber      string   `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Address          string   `json:"address,omitempty" validate:"max=500"`
	Gender           string   `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Birthday         string   `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive         bool     `json:"isActive"`
	ClinicID         *int64   `json:"clinicId,omitempty"`
	Roles            []string `json:"roles" validate:"dive,oneof=ROLE_SUPER_ADMIN ROLE_ADMIN ROLE_DOCTOR ROLE_PATIENT"`
	ExtraPermissions []string `json:"extraPermissions"`
}

// NewUserRequest тело обновления с текущими значениями пользователя
func NewUserRequest(u User) UserRequest {
	return UserRequest{
		FullName:         u.FullName,
		Email:            u.Email,
		PhoneNumber:      u.PhoneNumber,
		Address:          u.Address,
		Gender:           u.Gender,
		Birthday:         u.Birthday,
		IsActive:         u.IsActive,
		ClinicID:         u.ClinicID,
		Roles:            slices.Clone(u.Roles),
		ExtraPermissions: slices.Clone(u.ExtraPermissions),
	}
}

// Toggle добавляет значение в список или убирает его оттуда
func Toggle(list []string, value string) []string {
	if i := slices.Index(list, value); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), value)
}
