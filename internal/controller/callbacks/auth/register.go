package auth

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	keyRegister    = "register"
	registerTitle  = "📝 Đăng ký tài khoản"
	registerCancel = "/"
)

// HandleRegister начинает регистрацию пациента
func HandleRegister(hc *common.HandlerContext, _ common.Params) {
	if hc.Session != nil {
		hc.AnswerAlert("Bạn đã đăng nhập. Hãy đăng xuất để tạo tài khoản mới.")
		return
	}

	hc.SetData(keyRegister, &model.RegisterRequest{})
	common.Prompt(hc, state.StateRegisterName, registerTitle, "Bước 1/7: Nhập họ và tên:", registerCancel)
}

func registerRequest(hc *common.HandlerContext) (*model.RegisterRequest, bool) {
	req, ok := common.Data[*model.RegisterRequest](hc, keyRegister)
	if !ok {
		hc.EndDialog()
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired, ""))
	}
	return req, ok
}

// HandleRegisterName шаг ввода имени
func HandleRegisterName(hc *common.HandlerContext, text string) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	name := strings.TrimSpace(text)
	if err := service.ValidateField("fullName", name, "required,min=2,max=255"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.FullName = name
	common.Prompt(hc, state.StateRegisterEmail, registerTitle, "Bước 2/7: Nhập email:", registerCancel)
}

// HandleRegisterEmail шаг ввода email
func HandleRegisterEmail(hc *common.HandlerContext, text string) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	email := strings.TrimSpace(text)
	if err := service.ValidateField("email", email, "required,email"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.Email = email
	common.Prompt(hc, state.StateRegisterPassword, registerTitle,
		"Bước 3/7: Nhập mật khẩu (ít nhất 6 ký tự, tin nhắn sẽ được xóa):", registerCancel)
}

// HandleRegisterPassword шаг ввода пароля
func HandleRegisterPassword(hc *common.HandlerContext, text string) {
	hc.DeleteIncoming()

	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	if err := service.ValidateField("password", text, "required,min=6,max=100"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.Password = text
	common.Prompt(hc, state.StateRegisterGender, registerTitle, "Bước 4/7: Chọn giới tính:", registerCancel,
		keyboard.Button("👨 Nam", "/register/gender/"+model.GenderMale),
		keyboard.Button("👩 Nữ", "/register/gender/"+model.GenderFemale),
		keyboard.Button("Khác", "/register/gender/"+model.GenderOther),
	)
}

// HandleRegisterGenderText текст вместо кнопки на шаге выбора пола
func HandleRegisterGenderText(hc *common.HandlerContext, _ string) {
	hc.AnswerAlert("Vui lòng chọn giới tính bằng các nút bên trên.")
}

// HandleRegisterGender выбор пола кнопкой
func HandleRegisterGender(hc *common.HandlerContext, p common.Params) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	gender := p.String("gender")
	if err := service.ValidateField("gender", gender, "required,oneof=MALE FEMALE OTHER"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.Gender = gender
	common.Prompt(hc, state.StateRegisterBirthday, registerTitle,
		"Bước 5/7: Nhập ngày sinh (dd/mm/yyyy):", registerCancel)
}

// HandleRegisterBirthday шаг ввода даты рождения
func HandleRegisterBirthday(hc *common.HandlerContext, text string) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	birthday, err := service.ParseBirthday(text, time.Now())
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.Birthday = birthday
	common.Prompt(hc, state.StateRegisterPhone, registerTitle,
		"Bước 6/7: Nhập số điện thoại (không bắt buộc):", registerCancel,
		keyboard.SkipButton("/register/skip/phone"))
}

// HandleRegisterPhone шаг ввода телефона
func HandleRegisterPhone(hc *common.HandlerContext, text string) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	phone := strings.TrimSpace(text)
	if err := service.ValidateField("phoneNumber", phone, "omitempty,phone"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.PhoneNumber = phone
	promptAddress(hc)
}

// HandleRegisterSkipPhone пропуск телефона
func HandleRegisterSkipPhone(hc *common.HandlerContext, _ common.Params) {
	if _, ok := registerRequest(hc); !ok {
		return
	}
	promptAddress(hc)
}

func promptAddress(hc *common.HandlerContext) {
	common.Prompt(hc, state.StateRegisterAddress, registerTitle,
		"Bước 7/7: Nhập địa chỉ (không bắt buộc):", registerCancel,
		keyboard.SkipButton("/register/skip/address"))
}

// HandleRegisterAddress шаг ввода адреса и отправка регистрации
func HandleRegisterAddress(hc *common.HandlerContext, text string) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	address := strings.TrimSpace(text)
	if err := service.ValidateField("address", address, "max=500"); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err, ""))
		return
	}

	req.Address = address
	submitRegistration(hc, req)
}

// HandleRegisterSkipAddress пропуск адреса
func HandleRegisterSkipAddress(hc *common.HandlerContext, _ common.Params) {
	req, ok := registerRequest(hc)
	if !ok {
		return
	}
	submitRegistration(hc, req)
}

func submitRegistration(hc *common.HandlerContext, req *model.RegisterRequest) {
	msg, err := hc.Handler.Auth.Register(hc.Ctx, *req)
	if err != nil {
		hc.EndDialog()
		hc.Handler.Logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔁 Đăng ký lại", "/register")).
			AddHomeButton().
			Build()
		hc.Show(formatting.Escape(common.ErrorMessage(err, "Đăng ký thất bại. Vui lòng thử lại.")), kb)
		return
	}

	hc.EndDialog()
	hc.DeleteData(keyRegister)

	if msg == "" {
		msg = "Tài khoản đã được tạo."
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔑 Đăng nhập", "/login")).
		AddHomeButton().
		Build()
	hc.Show(fmt.Sprintf("✅ <b>Đăng ký thành công!</b>\n\n%s", escapeMessage(msg)), kb)
}
