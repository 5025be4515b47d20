package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// PublicSchedules GET /public/schedules?doctorId&date
func (c *Client) PublicSchedules(ctx context.Context, doctorID int64, date string) ([]model.ScheduleSlot, error) {
	query := url.Values{
		"doctorId": {strconv.FormatInt(doctorID, 10)},
		"date":     {date},
	}
	var list []model.ScheduleSlot
	if err := c.get(ctx, "/public/schedules", query, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DoctorSchedules GET /admin/doctors/{id}/schedules?date
func (c *Client) DoctorSchedules(ctx context.Context, doctorID int64, date string) ([]model.ScheduleSlot, error) {
	var list []model.ScheduleSlot
	path := fmt.Sprintf("/admin/doctors/%d/schedules", doctorID)
	if err := c.get(ctx, path, url.Values{"date": {date}}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateSchedules POST /schedules
func (c *Client) CreateSchedules(ctx context.Context, req model.ScheduleCreateRequest) ([]model.ScheduleSlot, error) {
	var list []model.ScheduleSlot
	if err := c.post(ctx, "/schedules", nil, req, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// WorkingDays GET /doctor/schedules/working-days?year&month&doctorId,
// месяц 1..12, ответ: список дат YYYY-MM-DD с опубликованными слотами
func (c *Client) WorkingDays(ctx context.Context, doctorID int64, year, month int) ([]string, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(month)},
	}
	if doctorID > 0 {
		query.Set("doctorId", strconv.FormatInt(doctorID, 10))
	}

	var days []string
	if err := c.get(ctx, "/doctor/schedules/working-days", query, &days); err != nil {
		return nil, err
	}
	return days, nil
}
