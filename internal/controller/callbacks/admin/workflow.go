package admin

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	workflowPath  = "/admin/workflow"
	columnPreview = 3
)

// boardColumns колонки доски в порядке движения записи
var boardColumns = []model.AppointmentStatus{
	model.AppointmentStatusPending,
	model.AppointmentStatusConfirmed,
	model.AppointmentStatusCompleted,
	model.AppointmentStatusCancelled,
}

// HandleWorkflow доска записей по статусам
func HandleWorkflow(hc *common.HandlerContext, _ common.Params) {
	board, err := common.LoadBoard(hc, service.ViewerAdmin, true)
	if err != nil {
		common.HandleError(hc, err, "load_admin_appointments", "Không tải được lịch hẹn.")
		return
	}
	hc.Show(BuildWorkflowScreen(board))
}

// BuildWorkflowScreen колонки с количеством и первыми записями
func BuildWorkflowScreen(board *service.Board) (string, *models.InlineKeyboardMarkup) {
	columns := board.Columns(boardColumns...)

	var b strings.Builder
	b.WriteString("🗂 <b>Quy trình lịch hẹn</b>\n")

	kb := keyboard.NewBuilder()
	buttons := make([]models.InlineKeyboardButton, 0, len(boardColumns))
	for _, status := range boardColumns {
		items := columns[status]
		display := formatting.GetAppointmentStatusDisplay(status)

		fmt.Fprintf(&b, "\n%s <b>%s</b> (%d)\n", display.Emoji, display.Text, len(items))
		for i, a := range items {
			if i == columnPreview {
				fmt.Fprintf(&b, "   … và %d lịch khác\n", len(items)-columnPreview)
				break
			}
			fmt.Fprintf(&b, "   #%d · %s · %s\n", a.ID,
				formatting.OrDash(a.PatientName),
				formatting.FormatSlot(a.AppointmentDate, a.AppointmentTimeSlot))
		}

		buttons = append(buttons, keyboard.Button(
			fmt.Sprintf("%s %d", display.Emoji, len(items)),
			common.Path(workflowPath, status)))
	}
	kb.Grid(buttons, 4)
	kb.Row(keyboard.RefreshButton(workflowPath))
	kb.AddBackAndHome(dashboardPath)

	return b.String(), kb.Build()
}

// HandleWorkflowColumn записи одной колонки
func HandleWorkflowColumn(hc *common.HandlerContext, p common.Params) {
	board, err := common.LoadBoard(hc, service.ViewerAdmin, false)
	if err != nil {
		common.HandleError(hc, err, "load_admin_appointments", "Không tải được lịch hẹn.")
		return
	}

	status := model.AppointmentStatus(p.String("status"))
	items := board.Columns(status)[status]
	columnPath := common.Path(workflowPath, status)

	text, kb := workflow.BuildList("🗂 <b>"+formatting.FormatStatus(status)+"</b>", "", items, appointmentsPath, columnPath, p.Page())
	kb.AddBackAndHome(workflowPath)
	hc.Show(text, kb.Build())
}
