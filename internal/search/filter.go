package search

import (
	"strconv"
	"strings"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Criteria критерии фильтрации. Пустая строка означает "не задано".
type Criteria struct {
	Keyword     string
	SpecialtyID string
	ClinicID    string
	Status      string
	Date        string
	DateFrom    string
	DateTo      string
}

// IsEmpty true если ни один критерий не задан
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Predicate условие отбора элемента
type Predicate[T any] func(T) bool

// Filter оставляет элементы, удовлетворяющие всем условиям, сохраняя порядок.
// nil-условия пропускаются.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, active) {
			result = append(result, item)
		}
	}
	return result
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

// MatchKeyword проверяет вхождение ключевого слова хотя бы в одно поле.
// Сравниваются нормализованные строки, только как подстрока.
func MatchKeyword(keyword string, fields ...string) bool {
	needle := Normalize(strings.TrimSpace(keyword))
	if needle == "" {
		return true
	}

	for _, field := range fields {
		if field != "" && strings.Contains(Normalize(field), needle) {
			return true
		}
	}
	return false
}

// Keyword условие по ключевому слову, nil если слово пустое
func Keyword[T any](keyword string, fields func(T) []string) Predicate[T] {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	return func(item T) bool {
		return MatchKeyword(keyword, fields(item)...)
	}
}

// EqualID условие равенства идентификатора, nil если значение не задано.
// Нечисловое значение не совпадает ни с чем.
func EqualID[T any](raw string, id func(T) int64) Predicate[T] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	want, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return func(T) bool { return false }
	}
	return func(item T) bool {
		return id(item) == want
	}
}

// EqualString условие точного совпадения строки, nil если значение не задано
func EqualString[T any](raw string, value func(T) string) Predicate[T] {
	if raw == "" {
		return nil
	}
	return func(item T) bool {
		return value(item) == raw
	}
}

// DateRange условие попадания даты в диапазон включительно.
// Границы сравниваются как календарные дни, пустая граница не ограничивает.
func DateRange[T any](from, to string, date func(T) string) Predicate[T] {
	if from == "" && to == "" {
		return nil
	}
	fromDay, hasFrom := model.ParseDate(from)
	toDay, hasTo := model.ParseDate(to)

	return func(item T) bool {
		day, ok := model.ParseDate(date(item))
		if !ok {
			return false
		}
		if from != "" && (!hasFrom || day.Before(fromDay)) {
			return false
		}
		if to != "" && (!hasTo || day.After(toDay)) {
			return false
		}
		return true
	}
}

// SameDay условие совпадения календарного дня
func SameDay[T any](raw string, date func(T) string) Predicate[T] {
	if raw == "" {
		return nil
	}
	return DateRange(raw, raw, date)
}

// FilterDoctors фильтр поиска врачей: ключевое слово по имени врача,
// специальности или клинике; специальность и клиника по ID.
func FilterDoctors(doctors []model.Doctor, c Criteria) []model.Doctor {
	return Filter(doctors,
		Keyword(c.Keyword, func(d model.Doctor) []string {
			return []string{d.FullName, d.SpecialtyName(), d.ClinicName()}
		}),
		EqualID(c.SpecialtyID, func(d model.Doctor) int64 { return d.SpecialtyID() }),
		EqualID(c.ClinicID, func(d model.Doctor) int64 { return d.ClinicID() }),
	)
}

// FilterAppointments фильтр списков записей: ключевое слово по пациенту,
// врачу, телефону и диагнозу; статус; точная дата; диапазон дат.
func FilterAppointments(appointments []model.Appointment, c Criteria) []model.Appointment {
	appointmentDate := func(a model.Appointment) string { return a.AppointmentDate }

	return Filter(appointments,
		Keyword(c.Keyword, func(a model.Appointment) []string {
			return []string{a.PatientName, a.DoctorName, a.PatientPhone, a.Diagnosis}
		}),
		EqualString(c.Status, func(a model.Appointment) string { return string(a.Status) }),
		SameDay(c.Date, appointmentDate),
		DateRange(c.DateFrom, c.DateTo, appointmentDate),
	)
}

// FilterByStatuses оставляет записи с указанными статусами
func FilterByStatuses(appointments []model.Appointment, statuses ...model.AppointmentStatus) []model.Appointment {
	return Filter(appointments, func(a model.Appointment) bool {
		for _, s := range statuses {
			if a.Status == s {
				return true
			}
		}
		return false
	})
}
