package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestUpdateClinicSendsWholeClinic(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewDirectoryService(client, zap.NewNop())

	var got model.ClinicRequest
	fb.handle(http.MethodPut, "/admin/clinics/4", func(w http.ResponseWriter, r *http.Request) {
		decodeBody(t, r, &got)
		_, _ = w.Write([]byte(`{"id":4,"name":"Phòng khám Hòa Bình"}`))
	})

	req := model.NewClinicRequest(model.Clinic{ID: 4, Name: "Phòng khám An Khang", Address: "12 Lê Lợi", PhoneNumber: "0901234567"})
	req.Name = "  Phòng khám Hòa Bình "
	clinic, err := svc.UpdateClinic(context.Background(), 4, req)
	require.NoError(t, err)

	assert.Equal(t, int64(4), clinic.ID)
	assert.Equal(t, "Phòng khám Hòa Bình", got.Name)
	assert.Equal(t, "12 Lê Lợi", got.Address)
	assert.Equal(t, "0901234567", got.PhoneNumber)
}

func TestUpdateSpecialtyValidatesBeforeCall(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewDirectoryService(client, zap.NewNop())

	_, err := svc.UpdateSpecialty(context.Background(), 2, model.SpecialtyRequest{Name: " "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Empty(t, fb.Calls())
}

func TestRegisterDoctorChecksChoices(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewDirectoryService(client, zap.NewNop())

	valid := model.DoctorRegistrationRequest{
		FullName:    "BS. Trần Minh",
		Email:       "minh@example.com",
		Password:    "secret1",
		SpecialtyID: 3,
		ClinicID:    7,
		Price:       decimal.NewFromInt(300000),
	}

	tests := []struct {
		name   string
		mutate func(*model.DoctorRegistrationRequest)
		want   error
	}{
		{"no specialty", func(r *model.DoctorRegistrationRequest) { r.SpecialtyID = 0 }, ErrNoSpecialty},
		{"no clinic", func(r *model.DoctorRegistrationRequest) { r.ClinicID = 0 }, ErrNoClinic},
		{"zero price", func(r *model.DoctorRegistrationRequest) { r.Price = decimal.Zero }, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.RegisterDoctor(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, fb.Calls())

	fb.handle(http.MethodPost, "/admin/doctors/register", func(w http.ResponseWriter, r *http.Request) {
		var body model.DoctorRegistrationRequest
		decodeBody(t, r, &body)
		assert.Equal(t, "minh@example.com", body.Email)
		assert.True(t, body.Price.Equal(decimal.NewFromInt(300000)))
		_, _ = w.Write([]byte(`{"doctorId":11,"fullName":"BS. Trần Minh"}`))
	})
	doctor, err := svc.RegisterDoctor(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, int64(11), doctor.DoctorID)
}

func TestUpdateDoctorKeepsUntouchedFields(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewDirectoryService(client, zap.NewNop())

	current := model.Doctor{
		DoctorID:       5,
		UserID:         12,
		FullName:       "BS. Lê Hà",
		AcademicDegree: "Thạc sĩ",
		Price:          decimal.NewFromInt(250000),
		Specialty:      &model.Specialty{ID: 3},
		Clinic:         &model.Clinic{ID: 7},
	}

	var got model.DoctorRequest
	fb.handle(http.MethodPut, "/admin/doctors/5", func(w http.ResponseWriter, r *http.Request) {
		decodeBody(t, r, &got)
		_, _ = w.Write([]byte(`{"doctorId":5}`))
	})

	req := model.NewDoctorRequest(current)
	req.ClinicID = 9
	_, err := svc.UpdateDoctor(context.Background(), 5, req)
	require.NoError(t, err)

	assert.Equal(t, int64(12), got.UserID)
	assert.Equal(t, int64(3), got.SpecialtyID)
	assert.Equal(t, int64(9), got.ClinicID)
	assert.Equal(t, "Thạc sĩ", got.AcademicDegree)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(250000)))
}

func TestParsePrice(t *testing.T) {
	for _, input := range []string{"300000", "300.000", "300,000 đ", " 300 000 "} {
		price, err := ParsePrice(input)
		require.NoError(t, err, input)
		assert.True(t, price.Equal(decimal.NewFromInt(300000)), input)
	}
	for _, input := range []string{"", "0", "-5", "ba trăm"} {
		_, err := ParsePrice(input)
		assert.ErrorIs(t, err, ErrInvalidPrice, input)
	}
}
