// Package guard решает, можно ли сессии открыть экран, и куда её отправить, если нельзя.
package guard

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

// LoginPath экран входа
const LoginPath = "/login"

// Group защищённая группа маршрутов. Пустой AllowedRoles пускает любого вошедшего пользователя.
type Group struct {
	Prefix       string
	AllowedRoles []string
}

// Decision результат проверки
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard набор защищённых групп
type Guard struct {
	groups []Group
}

// New создаёт guard. Группы проверяются от внешней к вложенной.
func New(groups ...Group) *Guard {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) < len(sorted[j].Prefix)
	})
	return &Guard{groups: sorted}
}

// Default группы маршрутов клиники
func Default() *Guard {
	return New(
		Group{Prefix: "/admin", AllowedRoles: []string{model.RoleAdmin, model.RoleSuperAdmin}},
		Group{Prefix: "/admin/users", AllowedRoles: []string{model.RoleSuperAdmin}},
		Group{Prefix: "/doctor", AllowedRoles: []string{model.RoleDoctor}},
		Group{Prefix: "/patient", AllowedRoles: []string{model.RolePatient}},
		Group{Prefix: "/booking"},
	)
}

// Resolve проверяет доступ к path.
// Без сессии на /login. С сессией без нужной роли в корень внешней группы,
// если к ней доступ есть, иначе на стартовую страницу роли.
func (g *Guard) Resolve(s *session.Session, path string) Decision {
	var parent *Group

	for i := range g.groups {
		group := &g.groups[i]
		if !matches(group.Prefix, path) {
			continue
		}

		if s == nil {
			return Decision{Redirect: LoginPath}
		}
		if len(group.AllowedRoles) > 0 && !s.HasAnyRole(group.AllowedRoles...) {
			if parent != nil {
				return Decision{Redirect: parent.Prefix}
			}
			return Decision{Redirect: Landing(s)}
		}
		parent = group
	}

	return Decision{Allowed: true}
}

// Landing стартовая страница по старшей роли
func Landing(s *session.Session) string {
	switch {
	case s == nil:
		return "/"
	case s.HasAnyRole(model.RoleSuperAdmin, model.RoleAdmin):
		return "/admin"
	case s.HasRole(model.RoleDoctor):
		return "/doctor"
	case s.HasRole(model.RolePatient):
		return "/patient"
	default:
		return "/"
	}
}

// matches совпадение по границе сегмента: /admin покрывает /admin и /admin/x, но не /administrator
func matches(prefix, path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
