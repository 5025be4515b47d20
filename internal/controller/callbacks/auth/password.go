package auth

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
)

const keyResetToken = "reset_token"

// HandleForgotPassword запрашивает email для восстановления
func HandleForgotPassword(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateForgotEmail,
		"🔓 Quên mật khẩu",
		"Nhập email đã đăng ký, chúng tôi sẽ gửi hướng dẫn đặt lại mật khẩu:",
		"/login")
}

// HandleForgotEmail отправляет запрос на письмо сброса
func HandleForgotEmail(hc *common.HandlerContext, text string) {
	msg, err := hc.Handler.Auth.ForgotPassword(hc.Ctx, text)
	if err != nil {
		common.HandleError(hc, err, "forgot_password", "Không gửi được email, vui lòng thử lại.")
		return
	}

	hc.EndDialog()
	if msg == "" {
		msg = "Vui lòng kiểm tra email để lấy mã đặt lại mật khẩu."
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔐 Nhập mã đặt lại", "/reset-password")).
		AddHomeButton().
		Build()
	hc.Show(fmt.Sprintf("📧 %s", escapeMessage(msg)), kb)
}

// HandleResetPassword запрашивает токен из письма
func HandleResetPassword(hc *common.HandlerContext, _ common.Params) {
	hc.DeleteData(keyResetToken)
	common.Prompt(hc, state.StateResetToken,
		"🔐 Đặt lại mật khẩu",
		"Nhập mã (token) trong email:",
		"/login")
}

// HandleResetToken шаг ввода токена
func HandleResetToken(hc *common.HandlerContext, text string) {
	token := strings.TrimSpace(text)
	if token == "" {
		hc.AnswerAlert("❌ Vui lòng nhập mã đặt lại mật khẩu.")
		return
	}

	hc.SetData(keyResetToken, token)
	common.Prompt(hc, state.StateResetPassword,
		"🔐 Đặt lại mật khẩu",
		"Nhập mật khẩu mới (ít nhất 6 ký tự, tin nhắn sẽ được xóa):",
		"/login")
}

// HandleResetNewPassword шаг ввода нового пароля
func HandleResetNewPassword(hc *common.HandlerContext, text string) {
	hc.DeleteIncoming()

	token, ok := common.Data[string](hc, keyResetToken)
	if !ok {
		hc.EndDialog()
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired, ""))
		return
	}

	msg, err := hc.Handler.Auth.ResetPassword(hc.Ctx, token, text)
	if err != nil {
		common.HandleError(hc, err, "reset_password", "Không đặt lại được mật khẩu. Mã có thể đã hết hạn.")
		return
	}

	hc.EndDialog()
	hc.DeleteData(keyResetToken)
	if msg == "" {
		msg = "Mật khẩu đã được cập nhật."
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔑 Đăng nhập", "/login")).
		Build()
	hc.Show(fmt.Sprintf("✅ %s", escapeMessage(msg)), kb)
}

// escapeMessage текст backend для ParseModeHTML
func escapeMessage(msg string) string {
	return formatting.Escape(strings.TrimSpace(msg))
}
