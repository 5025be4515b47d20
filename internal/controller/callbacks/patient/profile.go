package patient

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// HandleProfile профиль пациента
func HandleProfile(hc *common.HandlerContext, _ common.Params) {
	user, err := hc.Handler.Users.MyProfile(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "get_profile", "Không tải được hồ sơ.")
		return
	}
	hc.Show(BuildProfileScreen(user))
}

// BuildProfileScreen экран профиля с кнопками редактирования
func BuildProfileScreen(user *model.User) (string, *models.InlineKeyboardMarkup) {
	text := "👤 <b>Hồ sơ cá nhân</b>\n\n" + formatting.FormatUserInfo(*user)
	kb := keyboard.NewBuilder().
		Row(
			keyboard.EditButton("📞 Số điện thoại", "/patient/profile/phone"),
			keyboard.EditButton("🏠 Địa chỉ", "/patient/profile/address"),
		).
		AddBackAndHome(dashboardPath).
		Build()
	return text, kb
}

// HandleProfilePhoneStart запрашивает новый телефон
func HandleProfilePhoneStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateProfilePhone,
		"📞 Số điện thoại",
		"Nhập số điện thoại mới (ví dụ: 0912345678):",
		profilePath)
}

// HandleProfileAddressStart запрашивает новый адрес
func HandleProfileAddressStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateProfileAddress,
		"🏠 Địa chỉ",
		"Nhập địa chỉ mới:",
		profilePath)
}

// HandleProfilePhone сохраняет телефон из диалога
func HandleProfilePhone(hc *common.HandlerContext, text string) {
	updateProfile(hc, "phone", func(req *model.ProfileUpdateRequest) {
		req.PhoneNumber = strings.TrimSpace(text)
	})
}

// HandleProfileAddress сохраняет адрес из диалога
func HandleProfileAddress(hc *common.HandlerContext, text string) {
	updateProfile(hc, "address", func(req *model.ProfileUpdateRequest) {
		req.Address = strings.TrimSpace(text)
	})
}

// updateProfile отправляет профиль целиком, меняя одно поле.
// При ошибке валидации диалог остаётся на том же шаге.
func updateProfile(hc *common.HandlerContext, field string, change func(*model.ProfileUpdateRequest)) {
	current, err := hc.Handler.Users.MyProfile(hc.Ctx)
	if err != nil {
		hc.EndDialog()
		common.HandleError(hc, err, "get_profile", "Không tải được hồ sơ.")
		return
	}

	req := ProfileRequest(current)
	change(&req)

	user, err := hc.Handler.Users.UpdateMyProfile(hc.Ctx, hc.TelegramID, req)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update profile",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("field", field),
			zap.Error(err))
		hc.Show(common.BuildPromptScreen("❗️ Chưa lưu được",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật hồ sơ thất bại."))+"\n\nVui lòng nhập lại:",
			profilePath))
		return
	}

	hc.EndDialog()
	text, kb := BuildProfileScreen(user)
	hc.Show(fmt.Sprintf("✅ Đã cập nhật hồ sơ.\n\n%s", text), kb)
}

// ProfileRequest тело обновления профиля из текущего профиля
func ProfileRequest(user *model.User) model.ProfileUpdateRequest {
	return model.ProfileUpdateRequest{
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Gender:      user.Gender,
		Birthday:    user.Birthday,
	}
}
