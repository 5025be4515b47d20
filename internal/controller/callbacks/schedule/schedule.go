// Package schedule публикация расписания врача: сетка слотов на дату,
// календарь рабочих дней по месяцам и картинка недели. Врач открывает
// свой график, администратор график выбранного врача.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	doctorBase   = "/doctor/schedule"
	adminRoot    = "/admin/schedules"
	doctorsPage  = 8
	publisherKey = "publisher:"
)

// area сторона, открывшая публикацию
type area struct {
	name     string
	pattern  string
	backPath string
	base     func(p common.Params) string
	open     func(hc *common.HandlerContext, p common.Params, date time.Time) (*service.Publisher, error)
}

var doctorArea = area{
	name:     "doctor",
	pattern:  doctorBase,
	backPath: "/doctor",
	base:     func(common.Params) string { return doctorBase },
	open: func(hc *common.HandlerContext, _ common.Params, date time.Time) (*service.Publisher, error) {
		return hc.Handler.Schedules.OpenOwn(hc.Ctx, date)
	},
}

var adminArea = area{
	name:     "admin",
	pattern:  adminRoot + "/:doctorId",
	backPath: adminRoot,
	base: func(p common.Params) string {
		return common.Path(adminRoot, p.String("doctorId"))
	},
	open: openForDoctor,
}

// Register регистрирует экраны публикации для врача и администратора
func Register(r common.Registrar) {
	r.Handle(adminRoot, HandleDoctors)
	for _, a := range []area{doctorArea, adminArea} {
		a.register(r)
	}
}

func (a area) register(r common.Registrar) {
	r.Handle(a.pattern, a.handleOpen)
	r.Handle(a.pattern+"/date/:date", a.handleDate)
	r.Handle(a.pattern+"/toggle/:slot", a.handleToggle)
	r.Handle(a.pattern+"/publish", a.handlePublish)
	r.Handle(a.pattern+"/calendar", a.handleCalendar)
	r.Handle(a.pattern+"/month/:delta", a.handleMonth)
	r.Handle(a.pattern+"/week", a.handleWeek)
}

// openForDoctor публикация администратора от имени выбранного врача
func openForDoctor(hc *common.HandlerContext, p common.Params, date time.Time) (*service.Publisher, error) {
	doctorID, err := p.Int64("doctorId")
	if err != nil {
		return nil, err
	}

	doctors, err := hc.Handler.Schedules.Doctors(hc.Ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		if d.DoctorID == doctorID {
			return hc.Handler.Schedules.Open(hc.Ctx, d.DoctorID, d.FullName, date)
		}
	}
	return nil, common.ErrNotFound
}

// load публикатор из state; открывается заново, если его нет или врач другой
func (a area) load(hc *common.HandlerContext, p common.Params) (*service.Publisher, bool) {
	pub, ok := common.Data[*service.Publisher](hc, publisherKey+a.name)
	if ok && pub != nil && a.sameDoctor(pub, p) {
		return pub, true
	}

	pub, err := a.open(hc, p, hc.Handler.Schedules.Now())
	if err != nil {
		common.HandleError(hc, err, "open_schedule", "Không tải được lịch làm việc.")
		return nil, false
	}
	hc.SetData(publisherKey+a.name, pub)
	return pub, true
}

func (a area) sameDoctor(pub *service.Publisher, p common.Params) bool {
	if _, ok := p.Vars["doctorId"]; !ok {
		return true
	}
	id, err := p.Int64("doctorId")
	return err == nil && id == pub.DoctorID
}

func (a area) show(hc *common.HandlerContext, p common.Params, pub *service.Publisher) {
	now := hc.Handler.Schedules.Now()
	hc.Show(BuildPublisherScreen(pub, service.Grid(pub, now), a.base(p), a.backPath))
}

func (a area) handleOpen(hc *common.HandlerContext, p common.Params) {
	pub, err := a.open(hc, p, hc.Handler.Schedules.Now())
	if err != nil {
		common.HandleError(hc, err, "open_schedule", "Không tải được lịch làm việc.")
		return
	}
	hc.SetData(publisherKey+a.name, pub)
	a.show(hc, p, pub)
}

func (a area) handleDate(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}

	date, ok := model.ParseDate(p.String("date"))
	if !ok {
		common.HandleError(hc, common.ErrInvalidDate, "schedule_date", "")
		return
	}
	if err := hc.Handler.Schedules.SelectDate(hc.Ctx, pub, date); err != nil {
		common.HandleError(hc, err, "schedule_select_date", "Không tải được lịch ngày này.")
		return
	}
	a.show(hc, p, pub)
}

func (a area) handleToggle(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}

	if err := pub.Toggle(p.String("slot"), hc.Handler.Schedules.Now()); err != nil {
		common.HandleError(hc, err, "schedule_toggle", "")
		return
	}
	a.show(hc, p, pub)
}

func (a area) handlePublish(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}

	count, err := hc.Handler.Schedules.Publish(hc.Ctx, pub)
	if err != nil && count == 0 {
		common.HandleError(hc, err, "schedule_publish", "Mở lịch thất bại.")
		return
	}
	if err != nil {
		// слоты опубликованы, не удалось только перечитать экран
		hc.Handler.Logger.Warn("Failed to reload schedule after publish",
			zap.Int64("doctor_id", pub.DoctorID),
			zap.Error(err))
	}

	common.LogAndAnswer(hc, "Schedule published from bot", fmt.Sprintf("✅ Đã mở %d khung giờ", count),
		zap.Int64("doctor_id", pub.DoctorID),
		zap.String("date", model.FormatDate(pub.Date)))
	a.show(hc, p, pub)
}

func (a area) handleCalendar(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}
	hc.Show(BuildCalendarScreen(pub, hc.Handler.Schedules.Now(), a.base(p)))
}

func (a area) handleMonth(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}

	delta, err := p.Int("delta")
	if err != nil || (delta != -1 && delta != 1) {
		common.HandleError(hc, common.ErrInvalidFormat, "schedule_month", "")
		return
	}
	if err := hc.Handler.Schedules.TurnMonth(hc.Ctx, pub, delta); err != nil {
		common.HandleError(hc, err, "schedule_month", "Không tải được ngày làm việc.")
		return
	}
	hc.Show(BuildCalendarScreen(pub, hc.Handler.Schedules.Now(), a.base(p)))
}

func (a area) handleWeek(hc *common.HandlerContext, p common.Params) {
	pub, ok := a.load(hc, p)
	if !ok {
		return
	}

	week, err := hc.Handler.Schedules.Week(hc.Ctx, pub)
	if err != nil {
		common.HandleError(hc, err, "schedule_week", "Không tải được lịch tuần.")
		return
	}

	image, err := GenerateWeekImage(pub.DoctorName, pub.Date, week, hc.Handler.Schedules.Now())
	if err != nil {
		common.HandleError(hc, err, "week_image", "Không tạo được ảnh lịch tuần.")
		return
	}

	caption := fmt.Sprintf("🖼 <b>%s</b>\n%s", formatting.Escape(pub.DoctorName), formatting.FormatDateWithWeekday(pub.Date))
	if err := hc.SendPhoto("week.png", image, caption); err != nil {
		common.HandleError(hc, err, "send_week_image", "Không gửi được ảnh lịch tuần.")
		return
	}
	hc.Answer("🖼")
}

// cellEmoji значок ячейки сетки
var cellEmoji = map[service.CellState]string{
	service.CellFree:      "⬜",
	service.CellSelected:  "✅",
	service.CellPublished: "🟦",
	service.CellBooked:    "🔴",
	service.CellPast:      "⚫",
}

// BuildPublisherScreen сетка слотов на дату с кнопкой публикации
func BuildPublisherScreen(pub *service.Publisher, cells []service.GridCell, base, backPath string) (string, *models.InlineKeyboardMarkup) {
	selected := len(pub.SelectedIDs())

	var b strings.Builder
	b.WriteString("🗓 <b>Lịch làm việc</b>\n")
	fmt.Fprintf(&b, "👨‍⚕️ %s\n", formatting.OrDash(pub.DoctorName))
	fmt.Fprintf(&b, "📆 %s\n\n", formatting.FormatDateWithWeekday(pub.Date))
	b.WriteString("⬜ trống  ✅ đã chọn  🟦 đã mở  🔴 đã đặt  ⚫ đã qua\n")
	fmt.Fprintf(&b, "\nĐã chọn: %d khung giờ", selected)

	kb := keyboard.NewBuilder()
	buttons := make([]models.InlineKeyboardButton, 0, len(cells))
	for _, cell := range cells {
		callback := common.NoopPath
		if cell.Selectable() {
			callback = common.Path(base, "toggle", cell.Slot.ID)
		}
		buttons = append(buttons, keyboard.Button(cellEmoji[cell.State]+" "+cell.Slot.ID, callback))
	}
	kb.Grid(buttons, 3)

	prev := pub.Date.AddDate(0, 0, -1)
	next := pub.Date.AddDate(0, 0, 1)
	kb.Row(
		keyboard.Button("◀️", common.Path(base, "date", model.FormatDate(prev))),
		keyboard.Button("📅 Lịch tháng", common.Path(base, "calendar")),
		keyboard.Button("▶️", common.Path(base, "date", model.FormatDate(next))),
	)
	if selected > 0 {
		kb.Row(keyboard.Button(fmt.Sprintf("📤 Mở lịch (%d)", selected), common.Path(base, "publish")))
	}
	kb.Row(keyboard.Button("🖼 Xem cả tuần", common.Path(base, "week")))
	kb.AddBackAndHome(backPath)

	return b.String(), kb.Build()
}

// BuildCalendarScreen месяц с отметкой рабочих дней; прошедшие дни не выбираются
func BuildCalendarScreen(pub *service.Publisher, now time.Time, base string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("📅 <b>%s</b>\n👨‍⚕️ %s\n\n• ngày đã có lịch làm việc",
		formatting.GetMonthName(pub.Month), formatting.OrDash(pub.DoctorName))

	kb := keyboard.NewBuilder()

	header := make([]models.InlineKeyboardButton, 0, 7)
	for _, wd := range []int{1, 2, 3, 4, 5, 6, 0} {
		header = append(header, keyboard.Button(formatting.GetWeekdayShortName(wd), common.NoopPath))
	}
	kb.Row(header...)

	days := service.MonthDays(pub.Month)
	cells := make([]models.InlineKeyboardButton, 0, 42)
	// неделя начинается с понедельника
	offset := (int(days[0].Weekday()) + 6) % 7
	for i := 0; i < offset; i++ {
		cells = append(cells, keyboard.Button(" ", common.NoopPath))
	}

	today := model.StartOfDay(now)
	for _, day := range days {
		label := fmt.Sprintf("%d", day.Day())
		if pub.IsWorkingDay(day) {
			label += "•"
		}
		if day.Equal(pub.Date) {
			label = "[" + label + "]"
		}

		callback := common.Path(base, "date", model.FormatDate(day))
		if day.Before(today) {
			callback = common.NoopPath
		}
		cells = append(cells, keyboard.Button(label, callback))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, keyboard.Button(" ", common.NoopPath))
	}
	kb.Grid(cells, 7)

	kb.Row(keyboard.CalendarPagination(common.Path(base, "month")+"/", formatting.GetMonthName(pub.Month))...)
	kb.AddBackButton(base)
	return text, kb.Build()
}

// HandleDoctors выбор врача администратором
func HandleDoctors(hc *common.HandlerContext, p common.Params) {
	doctors, err := hc.Handler.Schedules.Doctors(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "schedule_doctors", "Không tải được danh sách bác sĩ.")
		return
	}
	hc.Show(BuildDoctorsScreen(doctors, p.Page()))
}

// BuildDoctorsScreen список врачей для публикации расписания
func BuildDoctorsScreen(doctors []model.Doctor, page int) (string, *models.InlineKeyboardMarkup) {
	pageItems, page, totalPages := common.Paginate(doctors, page, doctorsPage)

	kb := keyboard.NewBuilder()
	for _, d := range pageItems {
		label := "👨‍⚕️ " + formatting.Truncate(d.FullName, 40)
		if name := d.SpecialtyName(); name != "" {
			label += " · " + formatting.Truncate(name, 20)
		}
		kb.Row(keyboard.Button(label, common.Path(adminRoot, d.DoctorID)))
	}
	kb.AddPagination(common.PagePrefix(adminRoot), page, totalPages)
	kb.AddBackAndHome("/admin")

	text := "🗓 <b>Lịch làm việc bác sĩ</b>\n\nChọn bác sĩ để mở lịch khám:"
	if len(doctors) == 0 {
		text = "🗓 <b>Lịch làm việc bác sĩ</b>\n\n📭 Chưa có bác sĩ nào."
	}
	return text, kb.Build()
}
