package schedule

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Размеры сетки недели
const (
	headerHeight    = 60
	dayHeaderHeight = 40
	leftLabelsWidth = 110
	dayWidth        = 120
	rowHeight       = 32
	legendHeight    = 50
	cellPadding     = 3.0
	cellRadius      = 5.0
	daysInWeek      = 7
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{60, 65, 70, 255}
	labelColor     = color.RGBA{110, 115, 120, 255}
	evenDayColor   = color.RGBA{236, 238, 241, 255}
	oddDayColor    = color.RGBA{226, 229, 233, 255}
	todayColor     = color.RGBA{255, 228, 220, 255}
	emptyCellColor = color.RGBA{250, 250, 250, 255}

	publishedColor = color.RGBA{118, 170, 230, 255}
	bookedColor    = color.RGBA{235, 110, 110, 255}
	pastColor      = color.RGBA{170, 170, 170, 255}
)

// weekLegend подписи легенды
var weekLegend = []struct {
	Label string
	Color color.Color
}{
	{"Đã mở lịch", publishedColor},
	{"Đã đặt", bookedColor},
	{"Đã qua", pastColor},
}

// DejaVu Sans покрывает вьетнамские диакритики
//
//go:embed fonts/DejaVuSans.ttf
var regularFontData []byte

//go:embed fonts/DejaVuSans-Bold.ttf
var boldFontData []byte

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func parseFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = opentype.Parse(regularFontData); fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
			return
		}
		if boldFont, fontsErr = opentype.Parse(boldFontData); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// setFont выставляет шрифт нужного размера
func setFont(dc *gg.Context, size float64, bold bool) error {
	f := regularFont
	if bold {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	dc.SetFontFace(face)
	return nil
}

// GenerateWeekImage рисует сетку недели: строки каталога слотов, колонки дней
func GenerateWeekImage(doctorName string, start time.Time, week map[string][]model.ScheduleSlot, now time.Time) ([]byte, error) {
	if err := parseFonts(); err != nil {
		return nil, err
	}

	width := leftLabelsWidth + daysInWeek*dayWidth
	height := headerHeight + dayHeaderHeight + len(model.TimeSlots)*rowHeight + legendHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	start = model.StartOfDay(start)
	if err := drawHeader(dc, doctorName, start); err != nil {
		return nil, err
	}
	if err := setFont(dc, 12, false); err != nil {
		return nil, err
	}
	drawSlotLabels(dc)

	today := model.StartOfDay(now)
	for i := 0; i < daysInWeek; i++ {
		day := start.AddDate(0, 0, i)
		x := float64(leftLabelsWidth + i*dayWidth)
		drawDay(dc, day, x, i, day.Equal(today))
		drawCells(dc, day, x, week[model.FormatDate(day)], now)
	}

	drawLegend(dc, float64(height-legendHeight))

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawHeader имя врача и диапазон дат
func drawHeader(dc *gg.Context, doctorName string, start time.Time) error {
	end := start.AddDate(0, 0, daysInWeek-1)
	title := "Lịch làm việc: " + doctorName
	period := start.Format("02/01/2006") + " - " + end.Format("02/01/2006")

	if err := setFont(dc, 18, true); err != nil {
		return err
	}
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, 16, float64(headerHeight)/3, 0, 0.5)

	if err := setFont(dc, 13, false); err != nil {
		return err
	}
	dc.SetColor(labelColor)
	dc.DrawStringAnchored(period, 16, float64(headerHeight)*2/3, 0, 0.5)
	return nil
}

// drawSlotLabels колонка подписей слотов слева
func drawSlotLabels(dc *gg.Context) {
	dc.SetColor(labelColor)
	for i, slot := range model.TimeSlots {
		y := float64(headerHeight+dayHeaderHeight+i*rowHeight) + rowHeight/2
		dc.DrawStringAnchored(slot.Label, float64(leftLabelsWidth)-8, y, 1, 0.5)
	}
}

// drawDay фон колонки и заголовок дня
func drawDay(dc *gg.Context, day time.Time, x float64, index int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayColor)
	case index%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, headerHeight, dayWidth, float64(dayHeaderHeight+len(model.TimeSlots)*rowHeight))
	dc.Fill()

	label := formatting.GetWeekdayShortName(int(day.Weekday())) + " " + day.Format("02/01")
	dc.SetColor(textColor)
	dc.DrawStringAnchored(label, x+dayWidth/2, float64(headerHeight)+float64(dayHeaderHeight)/2, 0.5, 0.5)
}

// drawCells ячейки слотов дня по статусу
func drawCells(dc *gg.Context, day time.Time, x float64, slots []model.ScheduleSlot, now time.Time) {
	statuses := make(map[string]model.SlotStatus, len(slots))
	for _, slot := range slots {
		if len(slot.TimeSlot) >= 5 {
			statuses[slot.TimeSlot[:5]] = slot.Status
		}
	}

	for i, slot := range model.TimeSlots {
		y := float64(headerHeight + dayHeaderHeight + i*rowHeight)
		fill := CellColor(statuses, slot.ID, day, now)

		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x+cellPadding, y+cellPadding, dayWidth-2*cellPadding, rowHeight-2*cellPadding, cellRadius)
		dc.Fill()
	}
}

// CellColor цвет ячейки: опубликованный слот, занятый, прошедший или пустой
func CellColor(statuses map[string]model.SlotStatus, slotID string, day, now time.Time) color.RGBA {
	status, published := statuses[slotID]
	switch {
	case published && status == model.SlotStatusBooked:
		return bookedColor
	case published && status != model.SlotStatusCancelled:
		return publishedColor
	}
	if start, ok := model.SlotStart(day, slotID); ok && start.Before(now) {
		return pastColor
	}
	return emptyCellColor
}

// drawLegend легенда под сеткой
func drawLegend(dc *gg.Context, y float64) {
	x := float64(leftLabelsWidth)
	for _, item := range weekLegend {
		dc.SetColor(item.Color)
		dc.DrawRoundedRectangle(x, y+16, 20, 14, 3)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.Label, x+28, y+23, 0, 0.5)
		x += 160
	}
}
