package model

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout формат дат, которым обменивается backend
const DateLayout = "2006-01-02"

// SlotStatus статус опубликованного слота
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
)

// ScheduleSlot опубликованный слот приёма врача
type ScheduleSlot struct {
	ID       int64      `json:"id"`
	Date     string     `json:"date"`
	TimeSlot string     `json:"timeSlot"`
	Status   SlotStatus `json:"status"`
	DoctorID int64      `json:"doctorId,omitempty"`
}

// ScheduleCreateRequest тело POST /schedules
type ScheduleCreateRequest struct {
	DoctorID  int64    `json:"doctorId" validate:"required,gt=0"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlots []string `json:"timeSlots" validate:"required,min=1,dive,required"`
}

// TimeSlot элемент фиксированного каталога слотов
type TimeSlot struct {
	ID    string
	Label string
}

// TimeSlots каталог из 15 слотов по 30 минут с перерывом на обед
var TimeSlots = []TimeSlot{
	{ID: "08:00", Label: "08:00 - 08:30"},
	{ID: "08:30", Label: "08:30 - 09:00"},
	{ID: "09:00", Label: "09:00 - 09:30"},
	{ID: "09:30", Label: "09:30 - 10:00"},
	{ID: "10:00", Label: "10:00 - 10:30"},
	{ID: "10:30", Label: "10:30 - 11:00"},
	{ID: "11:00", Label: "11:00 - 11:30"},
	{ID: "11:30", Label: "11:30 - 12:00"},
	{ID: "13:30", Label: "13:30 - 14:00"},
	{ID: "14:00", Label: "14:00 - 14:30"},
	{ID: "14:30", Label: "14:30 - 15:00"},
	{ID: "15:00", Label: "15:00 - 15:30"},
	{ID: "15:30", Label: "15:30 - 16:00"},
	{ID: "16:00", Label: "16:00 - 16:30"},
	{ID: "16:30", Label: "16:30 - 17:00"},
}

// FindTimeSlot ищет слот каталога по ID ("08:00")
func FindTimeSlot(id string) (TimeSlot, bool) {
	for _, slot := range TimeSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// TimeSlotLabel возвращает подпись слота, либо сам ID если слота нет в каталоге
func TimeSlotLabel(id string) string {
	if slot, ok := FindTimeSlot(id); ok {
		return slot.Label
	}
	return id
}

// SlotStart вычисляет момент начала слота в указанный день.
// Принимает "08:00", "08:00 - 08:30" и "08:00-08:30".
func SlotStart(date time.Time, timeSlot string) (time.Time, bool) {
	start := strings.TrimSpace(strings.SplitN(timeSlot, "-", 2)[0])
	parts := strings.Split(start, ":")
	if len(parts) < 2 {
		return time.Time{}, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, false
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), true
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, bool) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate форматирует дату для backend
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay обрезает время до полуночи
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
