package app

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// PaymentResolver отмечает результат оплаты записи
type PaymentResolver interface {
	Resolve(ctx context.Context, appointmentID int64, success bool) (*model.PaymentReturn, error)
}

// PaymentNotifier сообщает чату результат оплаты
type PaymentNotifier interface {
	NotifyPaymentResult(ctx context.Context, ret *model.PaymentReturn, reason string) error
}

// HTTPServer страницы возврата с платёжного шлюза
type HTTPServer struct {
	echo        *echo.Echo
	addr        string
	payments    PaymentResolver
	notifier    PaymentNotifier
	botUsername string
	logger      *zap.Logger
}

// NewHTTPServer создаёт сервер и регистрирует маршруты
func NewHTTPServer(addr string, payments PaymentResolver, notifier PaymentNotifier, botUsername string, logger *zap.Logger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &HTTPServer{
		echo:        e,
		addr:        addr,
		payments:    payments,
		notifier:    notifier,
		botUsername: botUsername,
		logger:      logger,
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(logger))

	e.GET("/healthz", s.handleHealth)
	e.GET("/payment-success", s.handlePaymentSuccess)
	e.GET("/payment-failed", s.handlePaymentFailed)

	return s
}

// Handler http.Handler сервера
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Start слушает addr до остановки через Shutdown
func (s *HTTPServer) Start() error {
	s.logger.Info("Starting payment return server", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// vnpSuccessCode код успешной оплаты шлюза
const vnpSuccessCode = "00"

func (s *HTTPServer) handlePaymentSuccess(c echo.Context) error {
	// код шлюза, отличный от успешного, важнее пути страницы
	if code := c.QueryParam("vnp_ResponseCode"); code != "" && code != vnpSuccessCode {
		return s.handlePaymentFailed(c)
	}

	id, ok := appointmentID(c)
	if !ok {
		return c.HTML(http.StatusBadRequest, s.page("❓ Không xác định được lịch hẹn", "Đường dẫn thanh toán không hợp lệ."))
	}

	if !s.resolve(c, id, true, "") {
		return c.HTML(http.StatusOK, s.page(
			"⏳ Đang xác nhận thanh toán",
			fmt.Sprintf("Chưa xác nhận được thanh toán cho lịch hẹn #%d. Vui lòng kiểm tra trạng thái lịch hẹn trong bot.", id),
		))
	}
	return c.HTML(http.StatusOK, s.page(
		"✅ Thanh toán thành công!",
		fmt.Sprintf("Lịch hẹn #%d của bạn đã được xác nhận.", id),
	))
}

func (s *HTTPServer) handlePaymentFailed(c echo.Context) error {
	reason := PaymentFailureReason(c.QueryParam("vnp_ResponseCode"))

	id, ok := appointmentID(c)
	if !ok {
		return c.HTML(http.StatusBadRequest, s.page("❌ Thanh toán thất bại!", reason))
	}

	s.resolve(c, id, false, reason)
	return c.HTML(http.StatusOK, s.page(
		"❌ Thanh toán thất bại!",
		fmt.Sprintf("%s Lịch hẹn #%d vẫn ở trạng thái \"Chờ thanh toán\", bạn có thể thanh toán lại trong bot.", reason, id),
	))
}

// resolve отмечает результат и уведомляет чат, если backend его подтвердил.
// Ошибки не мешают показать страницу.
func (s *HTTPServer) resolve(c echo.Context, appointmentID int64, success bool, reason string) bool {
	ctx := c.Request().Context()

	ret, err := s.payments.Resolve(ctx, appointmentID, success)
	if err != nil {
		s.logger.Warn("Payment return not confirmed",
			zap.Int64("appointment_id", appointmentID),
			zap.Bool("success", success),
			zap.Error(err))
		return false
	}
	if ret == nil {
		s.logger.Info("Payment return without tracked chat",
			zap.Int64("appointment_id", appointmentID),
			zap.Bool("success", success))
		return false
	}

	if err := s.notifier.NotifyPaymentResult(ctx, ret, reason); err != nil {
		s.logger.Error("Failed to notify payment result",
			zap.Int64("appointment_id", appointmentID),
			zap.Int64("chat_id", ret.ChatID),
			zap.Error(err))
	}
	return true
}

func (s *HTTPServer) page(title, message string) string {
	link := ""
	if s.botUsername != "" {
		link = fmt.Sprintf(`<p><a href="https://t.me/%s">Quay lại bot</a></p>`, html.EscapeString(s.botUsername))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="vi"><head><meta charset="utf-8"><title>%s</title></head>
<body style="text-align:center;margin-top:50px;font-family:sans-serif">
<h1>%s</h1><p>%s</p>%s
</body></html>`,
		html.EscapeString(title), html.EscapeString(title), html.EscapeString(message), link)
}

// appointmentID ID записи из ?id= или из vnp_TxnRef шлюза
func appointmentID(c echo.Context) (int64, bool) {
	for _, key := range []string{"id", "vnp_TxnRef"} {
		raw := c.QueryParam(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// PaymentFailureReason текст причины отказа по коду ответа шлюза
func PaymentFailureReason(code string) string {
	switch code {
	case "24":
		return "Bạn đã hủy giao dịch thanh toán."
	case "51":
		return "Tài khoản của bạn không đủ số dư."
	default:
		return "Giao dịch không thành công do lỗi hệ thống hoặc ngân hàng từ chối."
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				logger.Error("request", append(fields, zap.Error(err))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		}
	}
}
