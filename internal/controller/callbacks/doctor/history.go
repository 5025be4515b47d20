package doctor

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	historyPath     = "/doctor/history"
	historyCriteria = "doctor_history_criteria"
)

// HandleHistory завершённые и отменённые приёмы с фильтрами
func HandleHistory(hc *common.HandlerContext, p common.Params) {
	showHistory(hc, p.Page())
}

func showHistory(hc *common.HandlerContext, page int) {
	criteria := common.Criteria(hc, historyCriteria)

	items, err := hc.Handler.Appointments.History(hc.Ctx, criteria)
	if err != nil {
		common.HandleError(hc, err, "doctor_history", "Không tải được lịch sử khám.")
		return
	}
	hc.Show(BuildHistoryScreen(items, criteria, page))
}

// BuildHistoryScreen экран истории приёмов
func BuildHistoryScreen(items []model.Appointment, criteria search.Criteria, page int) (string, *models.InlineKeyboardMarkup) {
	var header strings.Builder
	if criteria.Keyword != "" {
		fmt.Fprintf(&header, "🔎 Từ khóa: <i>%s</i>\n", formatting.Escape(criteria.Keyword))
	}
	if criteria.Status != "" {
		fmt.Fprintf(&header, "Trạng thái: %s\n", formatting.FormatStatus(model.AppointmentStatus(criteria.Status)))
	}
	if criteria.DateFrom != "" || criteria.DateTo != "" {
		fmt.Fprintf(&header, "📆 %s → %s\n", dateOrDash(criteria.DateFrom), dateOrDash(criteria.DateTo))
	}

	text, kb := workflow.BuildList("📚 <b>Lịch sử khám</b>", strings.TrimRight(header.String(), "\n"), items, historyPath, historyPath, page)
	kb.Row(
		keyboard.Button("🔎 Từ khóa", "/doctor/history/keyword"),
		keyboard.Button("📆 Từ ngày", "/doctor/history/from"),
		keyboard.Button("📆 Đến ngày", "/doctor/history/to"),
	)
	kb.Row(
		keyboard.Button("Tất cả", common.Path(historyPath, "status", statusAll)),
		keyboard.Button(formatting.FormatStatus(model.AppointmentStatusCompleted), common.Path(historyPath, "status", model.AppointmentStatusCompleted)),
		keyboard.Button(formatting.FormatStatus(model.AppointmentStatusCancelled), common.Path(historyPath, "status", model.AppointmentStatusCancelled)),
	)
	if !criteria.IsEmpty() {
		kb.Row(keyboard.Button("♻️ Xóa bộ lọc", "/doctor/history/reset"))
	}
	kb.AddBackAndHome(dashboardPath)
	return text, kb.Build()
}

func dateOrDash(date string) string {
	if date == "" {
		return "…"
	}
	return formatting.FormatBackendDate(date)
}

// HandleHistoryDetails карточка приёма из истории
func HandleHistoryDetails(hc *common.HandlerContext, p common.Params) {
	workflow.ShowDetails(hc, service.ViewerDoctor, p, appointmentsPath, historyPath)
}

// HandleHistoryStatus фильтр по статусу
func HandleHistoryStatus(hc *common.HandlerContext, p common.Params) {
	status := p.String("status")
	common.UpdateCriteria(hc, historyCriteria, func(c *search.Criteria) {
		if status == statusAll {
			c.Status = ""
			return
		}
		c.Status = status
	})
	showHistory(hc, 0)
}

// HandleHistoryReset сбрасывает фильтры
func HandleHistoryReset(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(historyCriteria, search.Criteria{})
	hc.Answer("♻️ Đã xóa bộ lọc")
	showHistory(hc, 0)
}

// HandleHistoryKeywordStart запрашивает ключевое слово
func HandleHistoryKeywordStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateHistoryKeyword,
		"🔎 Tìm trong lịch sử",
		"Nhập tên bệnh nhân, số điện thoại hoặc chẩn đoán:",
		historyPath)
}

// HandleHistoryFromStart запрашивает начало периода
func HandleHistoryFromStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateHistoryFrom,
		"📆 Từ ngày",
		"Nhập ngày bắt đầu (dd/mm/yyyy):",
		historyPath)
}

// HandleHistoryToStart запрашивает конец периода
func HandleHistoryToStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateHistoryTo,
		"📆 Đến ngày",
		"Nhập ngày kết thúc (dd/mm/yyyy):",
		historyPath)
}

// HandleHistoryKeyword получает ключевое слово из диалога
func HandleHistoryKeyword(hc *common.HandlerContext, text string) {
	hc.EndDialog()
	common.UpdateCriteria(hc, historyCriteria, func(c *search.Criteria) {
		c.Keyword = strings.TrimSpace(text)
	})
	showHistory(hc, 0)
}

// HandleHistoryFrom получает начало периода
func HandleHistoryFrom(hc *common.HandlerContext, text string) {
	setHistoryDate(hc, text, func(c *search.Criteria, date string) { c.DateFrom = date })
}

// HandleHistoryTo получает конец периода
func HandleHistoryTo(hc *common.HandlerContext, text string) {
	setHistoryDate(hc, text, func(c *search.Criteria, date string) { c.DateTo = date })
}

func setHistoryDate(hc *common.HandlerContext, text string, set func(*search.Criteria, string)) {
	date, ok := formatting.ParseDateInput(text)
	if !ok {
		hc.Show(common.BuildPromptScreen("📆 Lịch sử khám",
			common.ErrorMessage(common.ErrInvalidDate, ""), historyPath))
		return
	}

	criteria := common.Criteria(hc, historyCriteria)
	set(&criteria, date)
	if err := CheckDateRange(criteria); err != nil {
		hc.Show(common.BuildPromptScreen("📆 Lịch sử khám",
			common.ErrorMessage(err, ""), historyPath))
		return
	}

	hc.EndDialog()
	hc.SetData(historyCriteria, criteria)
	showHistory(hc, 0)
}

// CheckDateRange конец периода не раньше начала
func CheckDateRange(c search.Criteria) error {
	if c.DateFrom != "" && c.DateTo != "" && c.DateTo < c.DateFrom {
		return common.ErrDateRangeOrder
	}
	return nil
}
