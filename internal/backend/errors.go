package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError ответ backend с кодом >= 400
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if msg := e.FirstMessage(); msg != "" {
		return fmt.Sprintf("backend %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("backend %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// FirstMessage первое доступное сообщение: message, затем поля по алфавиту
func (e *APIError) FirstMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if e.Fields[k] != "" {
			return e.Fields[k]
		}
	}
	return ""
}

// maxPlainMessage длиннее этого текст ответа считаем мусором (HTML страницы и т.п.)
const maxPlainMessage = 300

// decodeError разбирает тело ошибки: {"message": ...}, строка JSON,
// карта поле -> сообщение или обычный текст.
func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return apiErr
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			apiErr.Message = msg
			return apiErr
		}

		fields := make(map[string]string)
		for k, v := range obj {
			if s, ok := v.(string); ok && s != "" && !isEnvelopeKey(k) {
				fields[k] = s
			}
		}
		if len(fields) > 0 {
			apiErr.Fields = fields
		}
		return apiErr
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		apiErr.Message = str
		return apiErr
	}

	if len(body) <= maxPlainMessage && !strings.HasPrefix(body, "<") {
		apiErr.Message = body
	}
	return apiErr
}

// isEnvelopeKey служебные поля стандартного ответа об ошибке, не сообщения
func isEnvelopeKey(key string) bool {
	switch key {
	case "timestamp", "path", "error", "trace", "status":
		return true
	}
	return false
}

// UserMessage текст ошибки для пользователя: сообщение backend, если оно есть,
// иначе fallback. Сетевые ошибки всегда дают fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.FirstMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
