package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// AdminAppointments GET /admin/appointments
func (c *Client) AdminAppointments(ctx context.Context) ([]model.Appointment, error) {
	var list []model.Appointment
	if err := c.get(ctx, "/admin/appointments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateAppointmentStatus PUT /admin/appointments/{id}/status?status=
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	path := fmt.Sprintf("/admin/appointments/%d/status", id)
	return c.put(ctx, path, url.Values{"status": {string(status)}}, nil, nil)
}

// DeleteAppointment DELETE /admin/appointments/{id}
func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/appointments/%d", id))
}

// DoctorAppointments GET /doctor/appointments
func (c *Client) DoctorAppointments(ctx context.Context) ([]model.Appointment, error) {
	var list []model.Appointment
	if err := c.get(ctx, "/doctor/appointments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CompleteAppointment PUT /doctor/appointments/{id}/complete
func (c *Client) CompleteAppointment(ctx context.Context, id int64, req model.CompleteRequest) error {
	return c.put(ctx, fmt.Sprintf("/doctor/appointments/%d/complete", id), nil, req, nil)
}

// BookAppointment POST /appointments/book
func (c *Client) BookAppointment(ctx context.Context, req model.BookingRequest) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := c.post(ctx, "/appointments/book", nil, req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CreatePaymentURL GET /payment/create-payment?appointmentId=
func (c *Client) CreatePaymentURL(ctx context.Context, appointmentID int64) (*model.PaymentURL, error) {
	var resp model.PaymentURL
	query := url.Values{"appointmentId": {strconv.FormatInt(appointmentID, 10)}}
	if err := c.get(ctx, "/payment/create-payment", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyAppointments GET /appointments/my-history
func (c *Client) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	var list []model.Appointment
	if err := c.get(ctx, "/appointments/my-history", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CancelMyAppointment PUT /appointments/{id}/cancel
func (c *Client) CancelMyAppointment(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/appointments/%d/cancel", id), nil, nil, nil)
}
