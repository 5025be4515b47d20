package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^(0|\+84)[0-9]{9,10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем JSON имена полей
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}

	return v
}

// fieldLabels подписи полей для сообщений пользователю
var fieldLabels = map[string]string{
	"email":          "Email",
	"password":       "Mật khẩu",
	"newPassword":    "Mật khẩu mới",
	"fullName":       "Họ và tên",
	"gender":         "Giới tính",
	"birthday":       "Ngày sinh",
	"phoneNumber":    "Số điện thoại",
	"address":        "Địa chỉ",
	"reason":         "Lý do khám",
	"diagnosis":      "Chẩn đoán",
	"prescription":   "Đơn thuốc",
	"name":           "Tên",
	"description":    "Mô tả",
	"academicDegree": "Học vị",
	"token":          "Mã xác nhận",
	"timeSlots":      "Khung giờ",
	"date":           "Ngày",
	"price":          "Giá khám",
	"roles":          "Vai trò",
}

// ValidationError ошибка проверки полей до обращения к backend
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s (%s)", e.Field, e.Tag)
}

// Message текст ошибки для пользователя
func (e *ValidationError) Message() string {
	label, ok := fieldLabels[e.Field]
	if !ok {
		label = e.Field
	}

	switch e.Tag {
	case "required":
		return fmt.Sprintf("Vui lòng nhập %s.", strings.ToLower(label))
	case "email":
		return "Email không đúng định dạng."
	case "phone":
		return "Số điện thoại không hợp lệ."
	case "min":
		return fmt.Sprintf("%s phải có ít nhất %s ký tự.", label, e.Param)
	case "max":
		return fmt.Sprintf("%s không được dài quá %s ký tự.", label, e.Param)
	case "datetime":
		return fmt.Sprintf("%s không hợp lệ.", label)
	default:
		return fmt.Sprintf("%s không hợp lệ.", label)
	}
}

// Validate проверяет структуру по тегам validate и возвращает первую ошибку
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &ValidationError{Field: first.Field(), Tag: first.Tag(), Param: first.Param()}
	}
	return fmt.Errorf("validate: %w", err)
}

// ValidateField проверяет одно поле диалога по правилам validate
func ValidateField(field string, value any, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: field, Tag: verrs[0].Tag(), Param: verrs[0].Param()}
	}
	return fmt.Errorf("validate %s: %w", field, err)
}

// birthdayLayouts форматы ввода даты рождения
var birthdayLayouts = []string{"02/01/2006", "2/1/2006", "02.01.2006", "2006-01-02"}

// ParseBirthday разбирает дату рождения и проверяет год: от 1900 до текущего
func ParseBirthday(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	for _, layout := range birthdayLayouts {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		if t.Year() < 1900 || t.Year() > now.Year() || t.After(now) {
			return "", ErrInvalidBirthday
		}
		return t.Format("2006-01-02"), nil
	}
	return "", ErrInvalidBirthday
}

// ParsePrice разбирает цену в донгах; точки, запятые и пробелы считаются разделителями разрядов
func ParsePrice(input string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(".", "", ",", "", " ", "", "đ", "", "₫", "").Replace(strings.ToLower(strings.TrimSpace(input)))
	price, err := decimal.NewFromString(cleaned)
	if err != nil || !price.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}
