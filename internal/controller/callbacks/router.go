package callbacks

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/auth"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/doctor"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/public"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/schedule"
	"github.com/Freeeeeet/clinic_bot/internal/controller/guard"
)

// maxRedirects защита от зацикливания переадресаций guard
const maxRedirects = 3

type route struct {
	pattern  string
	segments []string
	literals int
	fn       common.RouteFunc
}

// Router сопоставляет пути экранов с обработчиками и проверяет доступ
type Router struct {
	handler *callbacktypes.Handler
	guard   *guard.Guard
	routes  []route
}

var _ common.Registrar = (*Router)(nil)
var _ common.Navigator = (*Router)(nil)

// NewRouter создаёт роутер со всеми экранами бота
func NewRouter(h *callbacktypes.Handler, g *guard.Guard) *Router {
	r := newRouter(h, g)

	public.Register(r)
	auth.Register(r)
	patient.Register(r)
	doctor.Register(r)
	schedule.Register(r)
	admin.Register(r)

	return r
}

func newRouter(h *callbacktypes.Handler, g *guard.Guard) *Router {
	return &Router{handler: h, guard: g}
}

// Handle регистрирует экран. Сегмент ":name" совпадает с любым значением.
func (r *Router) Handle(pattern string, fn common.RouteFunc) {
	segments := common.SplitPath(pattern)
	literals := 0
	for _, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			literals++
		}
	}
	r.routes = append(r.routes, route{
		pattern:  pattern,
		segments: segments,
		literals: literals,
		fn:       fn,
	})
}

// HandleCallbackQuery обрабатывает нажатие inline кнопки
func (r *Router) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callback := update.CallbackQuery

	if callback.Data == keyboard.Noop {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	r.handler.Logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID))

	hc := common.NewHandlerContext(ctx, b, callback, r.handler, r)

	// Нажатие кнопки прерывает ожидание текста; шаги диалога ставят его заново
	hc.EndDialog()
	r.dispatch(hc, callback.Data, 0)
	hc.Finish()
}

// Navigate открывает экран по пути из обработчика или текстового диалога
func (r *Router) Navigate(hc *common.HandlerContext, path string) {
	r.dispatch(hc, path, 0)
}

func (r *Router) dispatch(hc *common.HandlerContext, raw string, depth int) {
	if depth > maxRedirects {
		r.handler.Logger.Error("Too many redirects", zap.String("path", raw))
		hc.AnswerAlert(common.ErrorMessage(common.ErrRouteNotFound, ""))
		return
	}

	path, query := splitRaw(raw)

	decision := r.guard.Resolve(hc.Session, path)
	if !decision.Allowed {
		r.handler.Logger.Info("Route denied",
			zap.String("path", path),
			zap.String("redirect", decision.Redirect),
			zap.Int64("telegram_id", hc.TelegramID))

		if decision.Redirect == guard.LoginPath {
			hc.Answer("🔒 Vui lòng đăng nhập")
			r.dispatch(hc, common.LoginPath(raw), depth+1)
			return
		}
		hc.Answer("⛔ Bạn không có quyền truy cập trang này")
		r.dispatch(hc, decision.Redirect, depth+1)
		return
	}

	rt, vars, ok := r.match(path)
	if !ok {
		r.handler.Logger.Warn("Unknown route", zap.String("path", path))
		hc.AnswerAlert(common.ErrorMessage(common.ErrRouteNotFound, ""))
		return
	}

	rt.fn(hc, common.Params{Path: path, Vars: vars, Query: query})
}

// match выбирает маршрут с наибольшим числом совпавших литеральных сегментов
func (r *Router) match(path string) (route, map[string]string, bool) {
	segments := common.SplitPath(path)

	var (
		best     route
		bestVars map[string]string
		found    bool
	)
	for _, rt := range r.routes {
		vars, ok := matchSegments(rt.segments, segments)
		if !ok {
			continue
		}
		if !found || rt.literals > best.literals {
			best, bestVars, found = rt, vars, true
		}
	}
	return best, bestVars, found
}

func matchSegments(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}

	vars := make(map[string]string)
	for i, part := range pattern {
		if strings.HasPrefix(part, ":") {
			vars[part[1:]] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return vars, true
}

func splitRaw(raw string) (string, url.Values) {
	path, rawQuery, _ := strings.Cut(raw, "?")
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	return path, query
}
