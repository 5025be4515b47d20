package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/auth"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/doctor"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/public"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
)

// newDialogs шаги диалогов, ожидающие текст
func newDialogs() map[state.UserState]DialogFunc {
	return map[state.UserState]DialogFunc{
		// Вход и регистрация
		state.StateLoginEmail:       auth.HandleLoginEmail,
		state.StateLoginPassword:    auth.HandleLoginPassword,
		state.StateRegisterName:     auth.HandleRegisterName,
		state.StateRegisterEmail:    auth.HandleRegisterEmail,
		state.StateRegisterPassword: auth.HandleRegisterPassword,
		state.StateRegisterGender:   auth.HandleRegisterGenderText,
		state.StateRegisterBirthday: auth.HandleRegisterBirthday,
		state.StateRegisterPhone:    auth.HandleRegisterPhone,
		state.StateRegisterAddress:  auth.HandleRegisterAddress,
		state.StateForgotEmail:      auth.HandleForgotEmail,
		state.StateResetToken:       auth.HandleResetToken,
		state.StateResetPassword:    auth.HandleResetNewPassword,

		state.StateFindDoctorKeyword: public.HandleFindDoctorKeyword,

		// Пациент
		state.StateBookingReason:  patient.HandleBookingReason,
		state.StateProfilePhone:   patient.HandleProfilePhone,
		state.StateProfileAddress: patient.HandleProfileAddress,

		// Врач
		state.StateDoctorDescription:    doctor.HandleDescription,
		state.StateDoctorDegree:         doctor.HandleDegree,
		state.StateCompleteDiagnosis:    doctor.HandleCompleteDiagnosis,
		state.StateCompletePrescription: doctor.HandleCompletePrescription,
		state.StateHistoryKeyword:       doctor.HandleHistoryKeyword,
		state.StateHistoryFrom:          doctor.HandleHistoryFrom,
		state.StateHistoryTo:            doctor.HandleHistoryTo,

		// Администратор
		state.StateAdminAppointmentsKeyword: admin.HandleAppointmentsKeyword,
		state.StateAdminAppointmentsDate:    admin.HandleAppointmentsDate,
		state.StateAdminUsersKeyword:        admin.HandleUsersKeyword,
		state.StateClinicName:               admin.HandleClinicName,
		state.StateClinicAddress:            admin.HandleClinicAddress,
		state.StateSpecialtyName:            admin.HandleSpecialtyName,
		state.StateSpecialtyDescription:     admin.HandleSpecialtyDescription,
		state.StateClinicEdit:               admin.HandleClinicEdit,
		state.StateSpecialtyEdit:            admin.HandleSpecialtyEdit,
		state.StateDoctorEdit:               admin.HandleDoctorEdit,
		state.StateDoctorNewName:            admin.HandleDoctorNewName,
		state.StateDoctorNewEmail:           admin.HandleDoctorNewEmail,
		state.StateDoctorNewPassword:        admin.HandleDoctorNewPassword,
		state.StateDoctorNewPrice:           admin.HandleDoctorNewPrice,
		state.StateUserEdit:                 admin.HandleUserEdit,
		state.StateUserNewName:              admin.HandleUserNewName,
		state.StateUserNewEmail:             admin.HandleUserNewEmail,
		state.StateUserNewPassword:          admin.HandleUserNewPassword,
	}
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.handler.StateManager.GetState(telegramID)

	// Если нет активного диалога, игнорируем
	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	dialog, ok := h.dialogs[currentState]
	if !ok {
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		return
	}

	// Текст пароля в лог не пишем
	h.logger.Info("Handling dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	hc := h.messageContext(ctx, b, update.Message)
	dialog(hc, update.Message.Text)
}
