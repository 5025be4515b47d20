package doctor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/workflow"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const completeKey = "complete"

// completeDraft черновик завершения приёма
type completeDraft struct {
	AppointmentID int64
	Diagnosis     string
}

// HandleCompleteStart запрашивает диагноз
func HandleCompleteStart(hc *common.HandlerContext, p common.Params) {
	_, a, ok := workflow.Find(hc, service.ViewerDoctor, p)
	if !ok {
		return
	}
	if !service.Allowed(a, service.ViewerDoctor, service.ActionComplete) {
		hc.AnswerAlert(common.ErrorMessage(service.ErrActionNotAllowed, ""))
		return
	}

	hc.SetData(completeKey, &completeDraft{AppointmentID: a.ID})
	common.Prompt(hc, state.StateCompleteDiagnosis,
		"✔️ Hoàn thành khám",
		"Bệnh nhân: <b>"+formatting.OrDash(a.PatientName)+"</b>\n\nNhập chẩn đoán:",
		common.Path(appointmentsPath, a.ID))
}

// HandleCompleteDiagnosis получает диагноз и запрашивает рецепт
func HandleCompleteDiagnosis(hc *common.HandlerContext, text string) {
	draft, ok := common.Data[*completeDraft](hc, completeKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "complete_diagnosis", "")
		return
	}

	cancelPath := common.Path(appointmentsPath, draft.AppointmentID)
	diagnosis := strings.TrimSpace(text)
	if diagnosis == "" {
		hc.Show(common.BuildPromptScreen("✔️ Hoàn thành khám",
			common.ErrorMessage(service.ErrDiagnosisRequired, ""), cancelPath))
		return
	}

	draft.Diagnosis = diagnosis
	common.Prompt(hc, state.StateCompletePrescription,
		"💊 Đơn thuốc",
		"Nhập đơn thuốc hoặc bấm \"Bỏ qua\":",
		cancelPath,
		keyboard.SkipButton(common.Path(appointmentsPath, draft.AppointmentID, "complete", "skip")))
}

// HandleCompletePrescription получает рецепт и завершает приём
func HandleCompletePrescription(hc *common.HandlerContext, text string) {
	finishComplete(hc, text)
}

// HandleCompleteSkip завершает приём без рецепта
func HandleCompleteSkip(hc *common.HandlerContext, _ common.Params) {
	finishComplete(hc, "")
}

func finishComplete(hc *common.HandlerContext, prescription string) {
	draft, ok := common.Data[*completeDraft](hc, completeKey)
	if !ok || draft == nil || draft.Diagnosis == "" {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "complete_appointment", "")
		return
	}
	hc.EndDialog()
	hc.DeleteData(completeKey)

	board, found, err := common.FindAppointment(hc, service.ViewerDoctor, draft.AppointmentID)
	if err != nil {
		common.HandleError(hc, err, "load_doctor_appointments", "Không tải được lịch hẹn.")
		return
	}
	if !found {
		common.HandleError(hc, service.ErrAppointmentNotFound, "complete_appointment", "")
		return
	}
	a, _ := board.Find(draft.AppointmentID)

	change, err := hc.Handler.Appointments.Complete(hc.Ctx, a, service.ViewerDoctor, draft.Diagnosis, prescription)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to complete appointment",
			zap.Int64("appointment_id", a.ID),
			zap.Error(err))
		text, kb := common.BuildMessageScreen(
			formatting.Escape(common.ErrorMessage(err, "Hoàn thành lịch hẹn thất bại.")),
			common.Path(appointmentsPath, a.ID))
		hc.Show(text, kb)
		return
	}
	board.Apply(change)

	common.LogAndAnswer(hc, "Appointment completed from bot", "✅ Đã hoàn thành",
		zap.Int64("appointment_id", a.ID))

	updated, _ := board.Find(a.ID)
	hc.Show(workflow.BuildDetails(updated, service.ViewerDoctor, appointmentsPath, appointmentsPath))
}
