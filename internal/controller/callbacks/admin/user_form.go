package admin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const (
	userDraftKey = "user_draft"
	newUserPath  = "/admin/users/new"
	newUserTitle = "➕ Thêm người dùng"
)

var userFields = []field{
	{Key: "name", Label: "Họ tên", Prompt: "Nhập họ tên:"},
	{Key: "phone", Label: "SĐT", Prompt: "Nhập số điện thoại (ví dụ: 0901234567):"},
	{Key: "address", Label: "Địa chỉ", Prompt: "Nhập địa chỉ:"},
	{Key: "password", Label: "Mật khẩu", Prompt: "Nhập mật khẩu mới (ít nhất 6 ký tự):"},
}

// BuildUserScreen карточка пользователя с правкой полей, ролей и прав.
// Себя нельзя удалить, заблокировать или лишить ролей.
func BuildUserScreen(u model.User, self bool) (string, *models.InlineKeyboardMarkup) {
	base := common.Path(usersPath, u.ID)
	kb := keyboard.NewBuilder().Grid(fieldButtons(base, userFields), 2)

	kb.Row(keyboard.Button("🧩 Quyền bổ sung", common.Path(base, "permissions")))
	if !self {
		lock := "🔒 Khóa tài khoản"
		if !u.IsActive {
			lock = "🔓 Mở khóa"
		}
		kb.Row(
			keyboard.Button("🔑 Vai trò", common.Path(base, "roles")),
			keyboard.Button(lock, common.Path(base, "active")),
		)
	}
	if u.HasRole(model.RoleDoctor) {
		kb.Row(keyboard.Button("👨‍⚕️ Tạo hồ sơ bác sĩ", common.Path(base, "doctor")))
	}
	if !self {
		kb.Row(keyboard.DeleteButton(common.Path(base, "delete")))
	}
	kb.AddBackAndHome(usersPath)

	return formatting.FormatUserInfo(u), kb.Build()
}

// HandleUserEditStart запрашивает новое значение поля пользователя
func HandleUserEditStart(hc *common.HandlerContext, p common.Params) {
	startFieldEdit(hc, p, userFields, state.StateUserEdit, "✏️ Sửa người dùng", usersPath)
}

// ApplyUserField записывает значение поля в тело запроса
func ApplyUserField(req *model.UserRequest, key, value string) error {
	switch key {
	case "name":
		req.FullName = strings.TrimSpace(value)
	case "phone":
		req.PhoneNumber = strings.TrimSpace(value)
	case "address":
		req.Address = strings.TrimSpace(value)
	case "password":
		if err := service.ValidateField("password", value, "required,min=6,max=100"); err != nil {
			return err
		}
		req.Password = value
	default:
		return common.ErrInvalidFormat
	}
	return nil
}

// HandleUserEdit сохраняет новое значение поля пользователя
func HandleUserEdit(hc *common.HandlerContext, text string) {
	edit := currentFieldEdit(hc, "user_edit")
	if edit == nil {
		return
	}
	if edit.Field.Key == "password" {
		hc.DeleteIncoming()
	}

	_, err := updateUser(hc, edit.ID, func(req *model.UserRequest) error {
		return ApplyUserField(req, edit.Field.Key, text)
	})
	if err != nil {
		hc.Show(common.BuildPromptScreen("✏️ Sửa người dùng",
			formatting.Escape(common.ErrorMessage(err, "Cập nhật người dùng thất bại."))+"\n\n"+edit.Field.Prompt,
			common.Path(usersPath, edit.ID)))
		return
	}
	hc.EndDialog()
	hc.DeleteData(fieldEditKey)
}

// HandleUserActiveToggle блокирует или разблокирует пользователя
func HandleUserActiveToggle(hc *common.HandlerContext, p common.Params) {
	id, ok := otherUserID(hc, p)
	if !ok {
		return
	}

	_, err := updateUser(hc, id, func(req *model.UserRequest) error {
		req.IsActive = !req.IsActive
		return nil
	})
	if err != nil {
		common.HandleError(hc, err, "toggle_user_active", "Cập nhật người dùng thất bại.")
	}
}

// HandleUserRoles выбор ролей пользователя
func HandleUserRoles(hc *common.HandlerContext, p common.Params) {
	id, ok := otherUserID(hc, p)
	if !ok {
		return
	}

	user, err := hc.Handler.Users.User(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_user", "Không tải được người dùng.")
		return
	}
	hc.Show(BuildRolesScreen(user.FullName, user.Roles, common.Path(usersPath, id, "roles"), common.Path(usersPath, id), ""))
}

// HandleUserRoleToggle переключает роль и сразу сохраняет пользователя
func HandleUserRoleToggle(hc *common.HandlerContext, p common.Params) {
	id, ok := otherUserID(hc, p)
	if !ok {
		return
	}
	role := p.String("role")
	if !slices.Contains(model.Roles, role) {
		common.HandleError(hc, common.ErrInvalidFormat, "user_role", "")
		return
	}

	user, err := updateUserSilently(hc, id, func(req *model.UserRequest) error {
		req.Roles = model.Toggle(req.Roles, role)
		return nil
	})
	if err != nil {
		common.HandleError(hc, err, "toggle_user_role", "Cập nhật vai trò thất bại.")
		return
	}
	hc.Answer("✅ Đã lưu vai trò")
	hc.Show(BuildRolesScreen(user.FullName, user.Roles, common.Path(usersPath, id, "roles"), common.Path(usersPath, id), ""))
}

// BuildRolesScreen переключатели ролей: prefix/<role>; saveDone непустой добавляет кнопку сохранения
func BuildRolesScreen(name string, roles []string, prefix, back, saveDone string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🔑 <b>Vai trò</b>\n\n👤 %s\n\nBấm để bật hoặc tắt vai trò:", formatting.OrDash(name))

	buttons := make([]models.InlineKeyboardButton, 0, len(model.Roles))
	for _, role := range model.Roles {
		label := "⬜️ " + formatting.GetRoleName(role)
		if slices.Contains(roles, role) {
			label = "✅ " + formatting.GetRoleName(role)
		}
		buttons = append(buttons, keyboard.Button(label, common.Path(prefix, role)))
	}

	kb := keyboard.NewBuilder().Grid(buttons, 2)
	if saveDone != "" {
		kb.Row(keyboard.ConfirmButton(saveDone))
	}
	kb.AddBackButton(back)
	return text, kb.Build()
}

// HandleUserPermissions выбор дополнительных прав пользователя
func HandleUserPermissions(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return
	}

	user, err := hc.Handler.Users.User(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_user", "Không tải được người dùng.")
		return
	}
	perms, err := hc.Handler.Users.Permissions(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_permissions", "Không tải được danh sách quyền.")
		return
	}
	hc.Show(BuildPermissionsScreen(*user, perms))
}

// HandleUserPermissionToggle переключает право по его номеру в справочнике и сохраняет пользователя
func HandleUserPermissionToggle(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return
	}
	index, err := p.Int("index")
	if err != nil {
		common.HandleError(hc, err, "permission_index", "")
		return
	}

	perms, err := hc.Handler.Users.Permissions(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_permissions", "Không tải được danh sách quyền.")
		return
	}
	if index < 0 || index >= len(perms) {
		common.HandleError(hc, common.ErrNotFound, "permission_index", "")
		return
	}

	user, err := updateUserSilently(hc, id, func(req *model.UserRequest) error {
		req.ExtraPermissions = model.Toggle(req.ExtraPermissions, perms[index])
		return nil
	})
	if err != nil {
		common.HandleError(hc, err, "toggle_user_permission", "Cập nhật quyền thất bại.")
		return
	}
	hc.Answer("✅ Đã lưu quyền")
	hc.Show(BuildPermissionsScreen(*user, perms))
}

// BuildPermissionsScreen переключатели дополнительных прав: кнопки по номеру права в справочнике
func BuildPermissionsScreen(u model.User, perms []string) (string, *models.InlineKeyboardMarkup) {
	base := common.Path(usersPath, u.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "🧩 <b>Quyền bổ sung</b>\n\n👤 %s\n", formatting.OrDash(u.FullName))
	if len(perms) == 0 {
		b.WriteString("\n📭 Hệ thống chưa có quyền bổ sung nào.")
	} else {
		b.WriteString("\nBấm để cấp hoặc thu hồi quyền:")
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(perms))
	for i, perm := range perms {
		label := "⬜️ " + perm
		if slices.Contains(u.ExtraPermissions, perm) {
			label = "✅ " + perm
		}
		buttons = append(buttons, keyboard.Button(label, common.Path(base, "permissions", i)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 1).
		AddBackAndHome(base).
		Build()
	return b.String(), kb
}

// otherUserID ID из пути; действия над собственной учётной записью запрещены
func otherUserID(hc *common.HandlerContext, p common.Params) (int64, bool) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return 0, false
	}
	if id == hc.Session.User.ID {
		hc.AnswerAlert("❌ Không thể thay đổi vai trò hoặc khóa tài khoản của chính bạn.")
		return 0, false
	}
	return id, true
}

// updateUser сохраняет пользователя и показывает обновлённую карточку
func updateUser(hc *common.HandlerContext, id int64, change func(*model.UserRequest) error) (*model.User, error) {
	user, err := updateUserSilently(hc, id, change)
	if err != nil {
		return nil, err
	}
	text, kb := BuildUserScreen(*user, user.ID == hc.Session.User.ID)
	hc.Show("✅ Đã cập nhật người dùng.\n\n"+text, kb)
	return user, nil
}

// updateUserSilently перечитывает пользователя, меняет тело запроса и сохраняет
func updateUserSilently(hc *common.HandlerContext, id int64, change func(*model.UserRequest) error) (*model.User, error) {
	current, err := hc.Handler.Users.User(hc.Ctx, id)
	if err != nil {
		return nil, err
	}

	req := model.NewUserRequest(*current)
	if err := change(&req); err != nil {
		return nil, err
	}
	user, err := hc.Handler.Users.UpdateUser(hc.Ctx, id, req)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}
	if user.ID == 0 {
		user.ID = id
	}

	hc.Handler.Logger.Info("User updated from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("user_id", id))
	return user, nil
}

// ========================
// Новый пользователь
// ========================

func loadUserDraft(hc *common.HandlerContext, operation string) *model.UserRequest {
	draft, ok := common.Data[*model.UserRequest](hc, userDraftKey)
	if !ok || draft == nil {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, operation, "")
		return nil
	}
	return draft
}

// HandleUserAddStart запрашивает имя нового пользователя
func HandleUserAddStart(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(userDraftKey, &model.UserRequest{IsActive: true})
	common.Prompt(hc, state.StateUserNewName, newUserTitle, "Nhập họ tên:", usersPath)
}

// HandleUserNewName получает имя и запрашивает email
func HandleUserNewName(hc *common.HandlerContext, text string) {
	draft := loadUserDraft(hc, "user_new_name")
	if draft == nil {
		return
	}

	name := strings.TrimSpace(text)
	if err := service.ValidateField("fullName", name, "required,min=2,max=255"); err != nil {
		repromptNewUser(hc, err, "Nhập họ tên:")
		return
	}

	draft.FullName = name
	common.Prompt(hc, state.StateUserNewEmail, newUserTitle, "Nhập email đăng nhập:", usersPath)
}

// HandleUserNewEmail получает email и запрашивает пароль
func HandleUserNewEmail(hc *common.HandlerContext, text string) {
	draft := loadUserDraft(hc, "user_new_email")
	if draft == nil {
		return
	}

	email := strings.TrimSpace(text)
	if err := service.ValidateField("email", email, "required,email"); err != nil {
		repromptNewUser(hc, err, "Nhập email đăng nhập:")
		return
	}

	draft.Email = email
	common.Prompt(hc, state.StateUserNewPassword, newUserTitle, "Nhập mật khẩu ban đầu (ít nhất 6 ký tự):", usersPath)
}

// HandleUserNewPassword получает пароль и открывает выбор ролей
func HandleUserNewPassword(hc *common.HandlerContext, text string) {
	hc.DeleteIncoming()

	draft := loadUserDraft(hc, "user_new_password")
	if draft == nil {
		return
	}

	if err := service.ValidateField("password", text, "required,min=6,max=100"); err != nil {
		repromptNewUser(hc, err, "Nhập mật khẩu ban đầu (ít nhất 6 ký tự):")
		return
	}

	draft.Password = text
	hc.EndDialog()
	hc.Show(buildNewUserRoles(draft))
}

func buildNewUserRoles(draft *model.UserRequest) (string, *models.InlineKeyboardMarkup) {
	return BuildRolesScreen(draft.FullName, draft.Roles, common.Path(newUserPath, "role"), usersPath, common.Path(newUserPath, "save"))
}

// HandleUserNewRole переключает роль в черновике
func HandleUserNewRole(hc *common.HandlerContext, p common.Params) {
	draft := loadUserDraft(hc, "user_new_role")
	if draft == nil {
		return
	}
	role := p.String("role")
	if !slices.Contains(model.Roles, role) {
		common.HandleError(hc, common.ErrInvalidFormat, "user_role", "")
		return
	}

	draft.Roles = model.Toggle(draft.Roles, role)
	hc.Show(buildNewUserRoles(draft))
}

// HandleUserNewSave создаёт пользователя
func HandleUserNewSave(hc *common.HandlerContext, _ common.Params) {
	draft := loadUserDraft(hc, "user_new_save")
	if draft == nil {
		return
	}

	user, err := hc.Handler.Users.CreateUser(hc.Ctx, *draft)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to create user", zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err, "Tạo người dùng thất bại."))
		return
	}

	hc.DeleteData(userDraftKey)
	hc.Handler.Logger.Info("User created from bot",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("user_id", user.ID))

	text, kb := BuildUserScreen(*user, false)
	hc.Show("✅ Đã tạo người dùng.\n\n"+text, kb)
}

func repromptNewUser(hc *common.HandlerContext, err error, prompt string) {
	hc.Show(common.BuildPromptScreen(newUserTitle,
		formatting.Escape(common.ErrorMessage(err, ""))+"\n\n"+prompt, usersPath))
}
