package backend

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// PublicDoctors GET /public/doctors
func (c *Client) PublicDoctors(ctx context.Context) ([]model.Doctor, error) {
	var list []model.Doctor
	if err := c.get(ctx, "/public/doctors", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// PublicDoctor GET /public/doctors/{id}
func (c *Client) PublicDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.get(ctx, fmt.Sprintf("/public/doctors/%d", id), nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DoctorsBySpecialty GET /public/specialties/{id}/doctors
func (c *Client) DoctorsBySpecialty(ctx context.Context, specialtyID int64) ([]model.Doctor, error) {
	var list []model.Doctor
	if err := c.get(ctx, fmt.Sprintf("/public/specialties/%d/doctors", specialtyID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AdminDoctors GET /admin/doctors
func (c *Client) AdminDoctors(ctx context.Context) ([]model.Doctor, error) {
	var list []model.Doctor
	if err := c.get(ctx, "/admin/doctors", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateDoctor POST /admin/doctors: профиль врача для существующего пользователя
func (c *Client) CreateDoctor(ctx context.Context, req model.DoctorRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.post(ctx, "/admin/doctors", nil, req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// RegisterDoctor POST /admin/doctors/register
func (c *Client) RegisterDoctor(ctx context.Context, req model.DoctorRegistrationRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.post(ctx, "/admin/doctors/register", nil, req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateDoctor PUT /admin/doctors/{id}
func (c *Client) UpdateDoctor(ctx context.Context, id int64, req model.DoctorRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.put(ctx, fmt.Sprintf("/admin/doctors/%d", id), nil, req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DeleteDoctor DELETE /admin/doctors/{id}
func (c *Client) DeleteDoctor(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/doctors/%d", id))
}

// MyDoctorProfile GET /doctors/profile/me
func (c *Client) MyDoctorProfile(ctx context.Context) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.get(ctx, "/doctors/profile/me", nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateMyDoctorProfile PUT /doctor/profile/me
func (c *Client) UpdateMyDoctorProfile(ctx context.Context, req model.DoctorSelfUpdateRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.put(ctx, "/doctor/profile/me", nil, req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}
