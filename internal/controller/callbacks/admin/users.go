package admin

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

const (
	usersPath   = "/admin/users"
	usersFilter = "admin_users_filter"
	roleAll     = "all"
)

// UsersFilter серверный поиск пользователей
type UsersFilter struct {
	Keyword string
	Role    string
}

func loadUsersFilter(hc *common.HandlerContext) UsersFilter {
	filter, _ := common.Data[UsersFilter](hc, usersFilter)
	return filter
}

// HandleUsers страница пользователей
func HandleUsers(hc *common.HandlerContext, p common.Params) {
	showUsers(hc, p.Page())
}

func showUsers(hc *common.HandlerContext, page int) {
	filter := loadUsersFilter(hc)

	result, err := hc.Handler.Users.Users(hc.Ctx, page, filter.Keyword, filter.Role)
	if err != nil {
		common.HandleError(hc, err, "list_users", "Không tải được danh sách người dùng.")
		return
	}
	hc.Show(BuildUsersScreen(result, filter))
}

// BuildUsersScreen страница пользователей с фильтром роли
func BuildUsersScreen(result *model.UserPage, filter UsersFilter) (string, *models.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString("👥 <b>Người dùng</b>\n")
	if filter.Keyword != "" {
		fmt.Fprintf(&b, "🔎 Từ khóa: <i>%s</i>\n", formatting.Escape(filter.Keyword))
	}
	if filter.Role != "" {
		fmt.Fprintf(&b, "🔑 Vai trò: %s\n", formatting.GetRoleName(filter.Role))
	}

	kb := keyboard.NewBuilder()
	if len(result.Content) == 0 {
		b.WriteString("\n📭 Không tìm thấy người dùng.")
	} else {
		fmt.Fprintf(&b, "\nTổng cộng: %d\n", result.TotalElements)
		for _, u := range result.Content {
			fmt.Fprintf(&b, "\n👤 <b>%s</b> · %s", formatting.OrDash(u.FullName), formatting.Escape(u.Email))
			kb.Row(keyboard.Button("👤 "+formatting.Truncate(u.FullName, 40), common.Path(usersPath, u.ID)))
		}
	}
	kb.AddPagination(common.PagePrefix(usersPath), result.PageNo, result.TotalPages)

	roles := make([]models.InlineKeyboardButton, 0, len(model.Roles)+1)
	roles = append(roles, keyboard.Button("Tất cả", common.Path(usersPath, "role", roleAll)))
	for _, role := range model.Roles {
		roles = append(roles, keyboard.Button(formatting.GetRoleName(role), common.Path(usersPath, "role", role)))
	}
	kb.Grid(roles, 3)
	kb.Row(
		keyboard.Button("🔎 Từ khóa", "/admin/users/keyword"),
		keyboard.AddButton("Thêm", "/admin/users/add"),
	)
	if filter != (UsersFilter{}) {
		kb.Row(keyboard.Button("♻️ Xóa bộ lọc", "/admin/users/reset"))
	}
	kb.AddBackAndHome(dashboardPath)

	return b.String(), kb.Build()
}

// HandleUsersRole фильтр по роли
func HandleUsersRole(hc *common.HandlerContext, p common.Params) {
	filter := loadUsersFilter(hc)
	filter.Role = p.String("role")
	if filter.Role == roleAll {
		filter.Role = ""
	}
	hc.SetData(usersFilter, filter)
	showUsers(hc, 0)
}

// HandleUsersReset сбрасывает фильтр
func HandleUsersReset(hc *common.HandlerContext, _ common.Params) {
	hc.DeleteData(usersFilter)
	hc.Answer("♻️ Đã xóa bộ lọc")
	showUsers(hc, 0)
}

// HandleUsersKeywordStart запрашивает ключевое слово
func HandleUsersKeywordStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateAdminUsersKeyword,
		"🔎 Tìm người dùng",
		"Nhập tên hoặc email:",
		usersPath)
}

// HandleUsersKeyword получает ключевое слово из диалога
func HandleUsersKeyword(hc *common.HandlerContext, text string) {
	hc.EndDialog()
	filter := loadUsersFilter(hc)
	filter.Keyword = strings.TrimSpace(text)
	hc.SetData(usersFilter, filter)
	showUsers(hc, 0)
}

// HandleUserDetails карточка пользователя
func HandleUserDetails(hc *common.HandlerContext, p common.Params) {
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

	hc.Show(BuildUserScreen(*user, user.ID == hc.Session.User.ID))
}

// HandleUserDeleteAsk спрашивает подтверждение удаления
func HandleUserDeleteAsk(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return
	}
	if id == hc.Session.User.ID {
		hc.AnswerAlert("❌ Không thể xóa tài khoản của chính bạn.")
		return
	}

	user, err := hc.Handler.Users.User(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_user", "Không tải được người dùng.")
		return
	}

	question := fmt.Sprintf("🗑 <b>Xóa người dùng %s?</b>\n\n%s\n\nThao tác này không thể hoàn tác.",
		formatting.OrDash(user.FullName), formatting.Escape(user.Email))
	hc.Show(common.BuildConfirmScreen(question,
		common.Path(usersPath, id, "delete", "confirm"),
		common.Path(usersPath, id)))
}

// HandleUserDeleteConfirm удаляет пользователя
func HandleUserDeleteConfirm(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "user_id", "")
		return
	}
	if id == hc.Session.User.ID {
		hc.AnswerAlert("❌ Không thể xóa tài khoản của chính bạn.")
		return
	}

	if err := hc.Handler.Users.DeleteUser(hc.Ctx, id); err != nil {
		common.HandleError(hc, err, "delete_user", "Xóa người dùng thất bại.")
		return
	}

	common.LogAndAnswer(hc, "User deleted from bot", "🗑 Đã xóa người dùng", zap.Int64("user_id", id))
	hc.Navigate(usersPath)
}
