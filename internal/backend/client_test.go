package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/"}, zap.NewNop())
}

func TestClientAddsBearerTokenFromContext(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"status":"PENDING"}]`))
	})

	ctx := WithToken(context.Background(), "jwt-token")
	list, err := client.MyAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.AppointmentStatusPending, list[0].Status)

	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.Equal(t, "/api/appointments/my-history", gotPath)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var hasAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.PublicDoctors(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestClientSendsJSONBodyAndQuery(t *testing.T) {
	var gotBody model.BookingRequest
	var gotStatus string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/appointments/book":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"id":42,"status":"PENDING_PAYMENT"}`))
		case "/api/admin/appointments/42/status":
			assert.Equal(t, http.MethodPut, r.Method)
			gotStatus = r.URL.Query().Get("status")
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	appointment, err := client.BookAppointment(ctx, model.BookingRequest{DoctorID: 3, ScheduleID: 9, Reason: "Đau đầu"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), appointment.ID)
	assert.Equal(t, model.BookingRequest{DoctorID: 3, ScheduleID: 9, Reason: "Đau đầu"}, gotBody)

	require.NoError(t, client.UpdateAppointmentStatus(ctx, 42, model.AppointmentStatusConfirmed))
	assert.Equal(t, "CONFIRMED", gotStatus)
}

func TestClientPlainTextResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Đăng ký thành công"))
	})

	msg, err := client.Register(context.Background(), model.RegisterRequest{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "Đăng ký thành công", msg)
}

func TestClientDecodesErrorPayloads(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Lịch đã được đặt","status":400}`, message: "Lịch đã được đặt"},
		{name: "field map", status: http.StatusBadRequest, body: `{"phoneNumber":"Số điện thoại không hợp lệ","email":"Email đã tồn tại"}`, message: "Email đã tồn tại"},
		{name: "json string", status: http.StatusConflict, body: `"Slot already booked"`, message: "Slot already booked"},
		{name: "plain text", status: http.StatusForbidden, body: "Access denied", message: "Access denied"},
		{name: "html page", status: http.StatusBadGateway, body: "<html><body>Bad gateway</body></html>", message: "fallback"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", message: "fallback"},
		{name: "envelope only", status: http.StatusInternalServerError, body: `{"timestamp":"2025-01-01","error":"Internal Server Error","path":"/x"}`, message: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.CancelMyAppointment(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, UserMessage(err, "fallback"))
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestUserMessageNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())

	_, err := client.Specialties(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Không thể kết nối", UserMessage(err, "Không thể kết nối"))
}

func TestWorkingDaysQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025", q.Get("year"))
		assert.Equal(t, "6", q.Get("month"))
		assert.Equal(t, "7", q.Get("doctorId"))
		_, _ = w.Write([]byte(`["2025-06-10","2025-06-12"]`))
	})

	days, err := client.WorkingDays(context.Background(), 7, 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-12"}, days)
}

func TestClientUpdateDoctorSendsFullBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"doctorId":5,"fullName":"BS. An","price":300000}`))
	})

	req := model.NewDoctorRequest(model.Doctor{
		DoctorID:  5,
		UserID:    12,
		FullName:  "BS. An",
		Specialty: &model.Specialty{ID: 3},
		Clinic:    &model.Clinic{ID: 7},
	})
	doctor, err := client.UpdateDoctor(context.Background(), 5, req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/admin/doctors/5", gotPath)
	assert.EqualValues(t, 12, gotBody["userId"])
	assert.EqualValues(t, 3, gotBody["specialtyId"])
	assert.EqualValues(t, 7, gotBody["clinicId"])
	assert.Equal(t, "300000", doctor.Price.String())
}

func TestClientPermissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/permissions", r.URL.Path)
		_, _ = w.Write([]byte(`["APPOINTMENT_READ","USER_WRITE"]`))
	})

	list, err := client.Permissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"APPOINTMENT_READ", "USER_WRITE"}, list)
}
