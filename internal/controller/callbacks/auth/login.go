// Package auth экраны входа, регистрации и восстановления пароля.
package auth

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/guard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/service"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

const (
	keyLoginFrom  = "login_from"
	keyLoginEmail = "login_email"
)

// Register регистрирует экраны авторизации
func Register(r common.Registrar) {
	r.Handle("/login", HandleLogin)
	r.Handle("/logout", HandleLogout)

	r.Handle("/register", HandleRegister)
	r.Handle("/register/gender/:gender", HandleRegisterGender)
	r.Handle("/register/skip/phone", HandleRegisterSkipPhone)
	r.Handle("/register/skip/address", HandleRegisterSkipAddress)

	r.Handle("/forgot-password", HandleForgotPassword)
	r.Handle("/reset-password", HandleResetPassword)
}

// HandleLogin начинает вход. ?from= задаёт экран возврата после входа.
func HandleLogin(hc *common.HandlerContext, p common.Params) {
	if hc.Session != nil {
		hc.Answer("Bạn đã đăng nhập")
		hc.Navigate(guard.Landing(hc.Session))
		return
	}

	hc.SetData(keyLoginFrom, p.QueryString("from"))
	hc.DeleteData(keyLoginEmail)

	common.Prompt(hc, state.StateLoginEmail,
		"🔑 Đăng nhập",
		"Nhập email của bạn:",
		"/",
		keyboard.Button("🔓 Quên mật khẩu", "/forgot-password"),
		keyboard.Button("📝 Đăng ký", "/register"),
	)
}

// HandleLoginEmail шаг ввода email
func HandleLoginEmail(hc *common.HandlerContext, text string) {
	email := strings.TrimSpace(text)
	if err := service.ValidateField("email", email, "required,email"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	hc.SetData(keyLoginEmail, email)
	common.Prompt(hc, state.StateLoginPassword,
		"🔑 Đăng nhập",
		"Nhập mật khẩu (tin nhắn sẽ được xóa ngay sau khi gửi):",
		"/")
}

// HandleLoginPassword шаг ввода пароля: вход в backend и переход на исходный экран
func HandleLoginPassword(hc *common.HandlerContext, text string) {
	hc.DeleteIncoming()

	email, ok := common.Data[string](hc, keyLoginEmail)
	if !ok {
		hc.EndDialog()
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired, ""))
		return
	}

	sess, err := hc.Handler.Auth.Login(hc.Ctx, hc.TelegramID, email, text)
	if err != nil {
		hc.Handler.Logger.Warn("Login failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err, "Email hoặc mật khẩu không đúng."))
		common.Prompt(hc, state.StateLoginEmail, "🔑 Đăng nhập", "Nhập lại email:", "/")
		return
	}

	from, _ := common.Data[string](hc, keyLoginFrom)
	hc.EndDialog()
	hc.DeleteData(keyLoginEmail)
	hc.DeleteData(keyLoginFrom)
	hc.LoadSession()

	if err := hc.SendMessage("✅ Đăng nhập thành công!", nil); err != nil {
		hc.Handler.Logger.Warn("Failed to send login confirmation", zap.Error(err))
	}
	hc.Navigate(AfterLogin(from, sess))
}

// AfterLogin экран после входа: исходный, если он был, иначе стартовый по роли
func AfterLogin(from string, sess *session.Session) string {
	if from == "" || from == "/" || strings.HasPrefix(from, "/login") {
		return guard.Landing(sess)
	}
	return from
}

// HandleLogout выход
func HandleLogout(hc *common.HandlerContext, _ common.Params) {
	if err := hc.Handler.Auth.Logout(hc.Ctx, hc.TelegramID); err != nil {
		common.HandleError(hc, err, "logout", "Không thể đăng xuất, vui lòng thử lại.")
		return
	}

	hc.LoadSession()
	hc.Answer("👋 Đã đăng xuất")
	hc.Navigate("/")
}
