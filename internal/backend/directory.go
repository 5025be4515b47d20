package backend

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Specialties GET /public/specialties
func (c *Client) Specialties(ctx context.Context) ([]model.Specialty, error) {
	var list []model.Specialty
	if err := c.get(ctx, "/public/specialties", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Specialty GET /public/specialties/{id}
func (c *Client) Specialty(ctx context.Context, id int64) (*model.Specialty, error) {
	var specialty model.Specialty
	if err := c.get(ctx, fmt.Sprintf("/public/specialties/%d", id), nil, &specialty); err != nil {
		return nil, err
	}
	return &specialty, nil
}

// CreateSpecialty POST /admin/specialties
func (c *Client) CreateSpecialty(ctx context.Context, req model.SpecialtyRequest) (*model.Specialty, error) {
	var specialty model.Specialty
	if err := c.post(ctx, "/admin/specialties", nil, req, &specialty); err != nil {
		return nil, err
	}
	return &specialty, nil
}

// UpdateSpecialty PUT /admin/specialties/{id}
func (c *Client) UpdateSpecialty(ctx context.Context, id int64, req model.SpecialtyRequest) (*model.Specialty, error) {
	var specialty model.Specialty
	if err := c.put(ctx, fmt.Sprintf("/admin/specialties/%d", id), nil, req, &specialty); err != nil {
		return nil, err
	}
	return &specialty, nil
}

// DeleteSpecialty DELETE /admin/specialties/{id}
func (c *Client) DeleteSpecialty(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/specialties/%d", id))
}

// Clinics GET /public/clinics
func (c *Client) Clinics(ctx context.Context) ([]model.Clinic, error) {
	var list []model.Clinic
	if err := c.get(ctx, "/public/clinics", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Clinic GET /public/clinics/{id}
func (c *Client) Clinic(ctx context.Context, id int64) (*model.Clinic, error) {
	var clinic model.Clinic
	if err := c.get(ctx, fmt.Sprintf("/public/clinics/%d", id), nil, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// CreateClinic POST /admin/clinics
func (c *Client) CreateClinic(ctx context.Context, req model.ClinicRequest) (*model.Clinic, error) {
	var clinic model.Clinic
	if err := c.post(ctx, "/admin/clinics", nil, req, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// UpdateClinic PUT /admin/clinics/{id}
func (c *Client) UpdateClinic(ctx context.Context, id int64, req model.ClinicRequest) (*model.Clinic, error) {
	var clinic model.Clinic
	if err := c.put(ctx, fmt.Sprintf("/admin/clinics/%d", id), nil, req, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// DeleteClinic DELETE /admin/clinics/{id}
func (c *Client) DeleteClinic(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/clinics/%d", id))
}
