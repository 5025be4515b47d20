package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// CellState состояние ячейки сетки слотов
type CellState string

const (
	CellFree      CellState = "free"
	CellSelected  CellState = "selected"
	CellPublished CellState = "published"
	CellBooked    CellState = "booked"
	CellPast      CellState = "past"
)

// GridCell ячейка сетки публикации
type GridCell struct {
	Slot  model.TimeSlot
	State CellState
}

// Selectable ячейку можно отметить
func (c GridCell) Selectable() bool {
	return c.State == CellFree || c.State == CellSelected
}

// Publisher состояние публикации расписания врача на одну дату
type Publisher struct {
	DoctorID    int64
	DoctorName  string
	Date        time.Time
	Existing    []model.ScheduleSlot
	Selected    map[string]bool
	Month       time.Time
	WorkingDays map[string]bool
}

// SelectedIDs отмеченные слоты в порядке каталога
func (p *Publisher) SelectedIDs() []string {
	ids := make([]string, 0, len(p.Selected))
	for _, slot := range model.TimeSlots {
		if p.Selected[slot.ID] {
			ids = append(ids, slot.ID)
		}
	}
	return ids
}

// IsWorkingDay на дату уже опубликован хотя бы один слот
func (p *Publisher) IsWorkingDay(day time.Time) bool {
	return p.WorkingDays[model.FormatDate(day)]
}

// Grid сетка каталога слотов на дату публикатора
func Grid(p *Publisher, now time.Time) []GridCell {
	existing := make(map[string]model.SlotStatus, len(p.Existing))
	for _, slot := range p.Existing {
		existing[slotKey(slot.TimeSlot)] = slot.Status
	}

	cells := make([]GridCell, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		cells = append(cells, GridCell{Slot: slot, State: cellState(p, slot, existing, now)})
	}
	return cells
}

func cellState(p *Publisher, slot model.TimeSlot, existing map[string]model.SlotStatus, now time.Time) CellState {
	if status, ok := existing[slot.ID]; ok {
		if status == model.SlotStatusBooked {
			return CellBooked
		}
		return CellPublished
	}
	if start, ok := model.SlotStart(p.Date, slot.ID); ok && start.Before(now) {
		return CellPast
	}
	if p.Selected[slot.ID] {
		return CellSelected
	}
	return CellFree
}

// slotKey приводит "08:00 - 08:30" и "08:00:00" к ID каталога "08:00"
func slotKey(timeSlot string) string {
	if len(timeSlot) >= 5 {
		return timeSlot[:5]
	}
	return timeSlot
}

// Toggle отмечает или снимает отметку слота
func (p *Publisher) Toggle(slotID string, now time.Time) error {
	for _, cell := range Grid(p, now) {
		if cell.Slot.ID != slotID {
			continue
		}
		if !cell.Selectable() {
			return ErrSlotLocked
		}
		if p.Selected[slotID] {
			delete(p.Selected, slotID)
		} else {
			p.Selected[slotID] = true
		}
		return nil
	}
	return ErrSlotUnavailable
}

// ScheduleService публикация расписания врача
type ScheduleService struct {
	client *backend.Client
	now    func() time.Time
	logger *zap.Logger
}

func NewScheduleService(client *backend.Client, now func() time.Time, logger *zap.Logger) *ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		client: client,
		now:    now,
		logger: logger,
	}
}

// Now текущее время сервиса
func (s *ScheduleService) Now() time.Time {
	return s.now()
}

// Open открывает публикацию для врача на дату
func (s *ScheduleService) Open(ctx context.Context, doctorID int64, doctorName string, date time.Time) (*Publisher, error) {
	if doctorID == 0 {
		return nil, ErrNoDoctor
	}

	p := &Publisher{
		DoctorID:   doctorID,
		DoctorName: doctorName,
		Selected:   make(map[string]bool),
	}
	if err := s.SelectDate(ctx, p, date); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenOwn открывает публикацию для врача текущей сессии
func (s *ScheduleService) OpenOwn(ctx context.Context, date time.Time) (*Publisher, error) {
	doctor, err := s.client.MyDoctorProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctor profile: %w", err)
	}
	return s.Open(ctx, doctor.DoctorID, doctor.FullName, date)
}

// SelectDate меняет дату: перечитывает слоты, сбрасывает отметки.
// Рабочие дни загружаются заново только при смене месяца.
func (s *ScheduleService) SelectDate(ctx context.Context, p *Publisher, date time.Time) error {
	day := model.StartOfDay(date)
	if day.Before(model.StartOfDay(s.now())) {
		return ErrDateInPast
	}

	existing, err := s.client.DoctorSchedules(ctx, p.DoctorID, model.FormatDate(day))
	if err != nil {
		return fmt.Errorf("load doctor schedules: %w", err)
	}

	p.Date = day
	p.Existing = existing
	p.Selected = make(map[string]bool)

	month := monthOf(day)
	if p.WorkingDays == nil || !p.Month.Equal(month) {
		return s.loadWorkingDays(ctx, p, month)
	}
	return nil
}

// TurnMonth листает календарь и загружает рабочие дни нового месяца
func (s *ScheduleService) TurnMonth(ctx context.Context, p *Publisher, delta int) error {
	return s.loadWorkingDays(ctx, p, p.Month.AddDate(0, delta, 0))
}

func (s *ScheduleService) loadWorkingDays(ctx context.Context, p *Publisher, month time.Time) error {
	days, err := s.client.WorkingDays(ctx, p.DoctorID, month.Year(), int(month.Month()))
	if err != nil {
		return fmt.Errorf("load working days: %w", err)
	}

	working := make(map[string]bool, len(days))
	for _, d := range days {
		if t, ok := model.ParseDate(d); ok {
			working[model.FormatDate(t)] = true
		}
	}

	p.Month = month
	p.WorkingDays = working
	return nil
}

// Publish публикует отмеченные слоты одним запросом
func (s *ScheduleService) Publish(ctx context.Context, p *Publisher) (int, error) {
	ids := p.SelectedIDs()
	if len(ids) == 0 {
		return 0, ErrNothingSelected
	}

	req := model.ScheduleCreateRequest{
		DoctorID:  p.DoctorID,
		Date:      model.FormatDate(p.Date),
		TimeSlots: ids,
	}
	if err := Validate(req); err != nil {
		return 0, err
	}

	if _, err := s.client.CreateSchedules(ctx, req); err != nil {
		return 0, fmt.Errorf("publish schedules: %w", err)
	}

	s.logger.Info("Schedule published",
		zap.Int64("doctor_id", p.DoctorID),
		zap.String("date", req.Date),
		zap.Strings("time_slots", ids))

	if err := s.SelectDate(ctx, p, p.Date); err != nil {
		return len(ids), err
	}
	return len(ids), s.loadWorkingDays(ctx, p, monthOf(p.Date))
}

// Week опубликованные слоты врача на семь дней начиная с даты публикатора
func (s *ScheduleService) Week(ctx context.Context, p *Publisher) (map[string][]model.ScheduleSlot, error) {
	week := make(map[string][]model.ScheduleSlot, 7)
	for i := 0; i < 7; i++ {
		date := model.FormatDate(p.Date.AddDate(0, 0, i))
		slots, err := s.client.DoctorSchedules(ctx, p.DoctorID, date)
		if err != nil {
			return nil, fmt.Errorf("load schedules for %s: %w", date, err)
		}
		week[date] = slots
	}
	return week, nil
}

// MonthDays дни месяца календаря публикатора
func MonthDays(month time.Time) []time.Time {
	first := monthOf(month)
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Doctors список врачей для выбора администратором, по имени
func (s *ScheduleService) Doctors(ctx context.Context) ([]model.Doctor, error) {
	doctors, err := s.client.AdminDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	sort.SliceStable(doctors, func(i, j int) bool { return doctors[i].FullName < doctors[j].FullName })
	return doctors, nil
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
