package common

import (
	"errors"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotLoggedIn    = service.ErrNotLoggedIn
	ErrNoMessage      = errors.New("no message in callback")
	ErrInvalidFormat  = errors.New("invalid callback format")
	ErrDialogExpired  = errors.New("dialog data is gone")
	ErrNotFound       = errors.New("item not found")
	ErrRouteNotFound  = errors.New("route not found")
	ErrInvalidDate    = errors.New("invalid date input")
	ErrDateRangeOrder = errors.New("date range end before start")
)

// ErrorMessage возвращает текст ошибки для пользователя.
// Ошибки backend показываются его собственным текстом, иначе fallback.
func ErrorMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = "Đã xảy ra lỗi, vui lòng thử lại."
	}
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		return "❌ " + verr.Message()
	case errors.Is(err, ErrNotLoggedIn):
		return "🔒 Vui lòng đăng nhập để tiếp tục."
	case errors.Is(err, ErrNoMessage):
		return "❌ Không thể xử lý tin nhắn."
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Dữ liệu không hợp lệ."
	case errors.Is(err, ErrDialogExpired):
		return "⌛ Phiên thao tác đã hết hạn, vui lòng mở lại."
	case errors.Is(err, ErrNotFound), errors.Is(err, service.ErrAppointmentNotFound):
		return "❌ Không tìm thấy dữ liệu, vui lòng tải lại."
	case errors.Is(err, ErrRouteNotFound):
		return "❌ Trang không tồn tại."
	case errors.Is(err, ErrInvalidDate):
		return "❌ Ngày không hợp lệ. Nhập theo dạng dd/mm/yyyy."
	case errors.Is(err, ErrDateRangeOrder):
		return "❌ Ngày kết thúc phải sau ngày bắt đầu."
	case errors.Is(err, service.ErrActionNotAllowed):
		return "❌ Thao tác không hợp lệ với trạng thái hiện tại."
	case errors.Is(err, service.ErrDiagnosisRequired):
		return "❌ Vui lòng nhập chẩn đoán!"
	case errors.Is(err, service.ErrNoPaymentURL):
		return "❌ Không nhận được link thanh toán hợp lệ."
	case errors.Is(err, service.ErrNoAppointmentID):
		return "❌ Không nhận được mã lịch hẹn."
	case errors.Is(err, service.ErrBookingNotReady):
		return "❌ Vui lòng chọn khung giờ và nhập lý do khám."
	case errors.Is(err, service.ErrDateInPast):
		return "❌ Không thể chọn ngày trong quá khứ."
	case errors.Is(err, service.ErrSlotUnavailable):
		return "❌ Khung giờ này không còn trống."
	case errors.Is(err, service.ErrReasonRequired):
		return "❌ Vui lòng nhập lý do khám."
	case errors.Is(err, service.ErrSlotLocked):
		return "⛔ Khung giờ đã được đăng ký hoặc đã qua."
	case errors.Is(err, service.ErrNothingSelected):
		return "❌ Vui lòng chọn ít nhất một khung giờ."
	case errors.Is(err, service.ErrNoDoctor):
		return "❌ Vui lòng chọn bác sĩ."
	case errors.Is(err, service.ErrInvalidBirthday):
		return "❌ Ngày sinh không hợp lệ (năm từ 1900 đến nay)."
	case errors.Is(err, service.ErrInvalidPrice):
		return "❌ Giá khám phải là số dương, ví dụ 300000."
	case errors.Is(err, service.ErrNoRoles):
		return "❌ Vui lòng chọn ít nhất một vai trò."
	case errors.Is(err, service.ErrNoSpecialty):
		return "❌ Vui lòng chọn chuyên khoa."
	case errors.Is(err, service.ErrNoClinic):
		return "❌ Vui lòng chọn phòng khám."
	default:
		return "❌ " + backend.UserMessage(err, fallback)
	}
}
