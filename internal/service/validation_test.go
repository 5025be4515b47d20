package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestValidateRegisterRequest(t *testing.T) {
	valid := model.RegisterRequest{
		FullName: "Vũ Lan",
		Email:    "lan@example.com",
		Password: "secret1",
		Gender:   model.GenderFemale,
		Birthday: "1995-04-30",
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(*model.RegisterRequest)
		field  string
		tag    string
	}{
		{"missing name", func(r *model.RegisterRequest) { r.FullName = "" }, "fullName", "required"},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "lan.example.com" }, "email", "email"},
		{"short password", func(r *model.RegisterRequest) { r.Password = "123" }, "password", "min"},
		{"bad phone", func(r *model.RegisterRequest) { r.PhoneNumber = "12345" }, "phoneNumber", "phone"},
		{"bad gender", func(r *model.RegisterRequest) { r.Gender = "X" }, "gender", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := Validate(req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.tag, verr.Tag)
			assert.NotEmpty(t, verr.Message())
		})
	}
}

func TestValidPhoneNumbers(t *testing.T) {
	for _, phone := range []string{"0901234567", "+84901234567", "02838554269"} {
		req := model.ProfileUpdateRequest{PhoneNumber: phone}
		assert.NoError(t, Validate(req), phone)
	}
}

func TestPhoneRuleRegistered(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Var("0901234567", "phone"))
	assert.Error(t, v.Var("12345", "phone"))
}

func TestParseBirthday(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "30/04/1995", want: "1995-04-30"},
		{in: "1/2/2000", want: "2000-02-01"},
		{in: "1995-04-30", want: "1995-04-30"},
		{in: "01/01/1899", wantErr: true},
		{in: "01/01/2030", wantErr: true},
		{in: "31/02/2000", wantErr: true},
		{in: "hôm qua", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBirthday(tt.in, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBirthday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateField(t *testing.T) {
	require.NoError(t, ValidateField("fullName", "Nguyễn Văn A", "required,min=2,max=255"))

	err := ValidateField("password", "123", "required,min=6")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
	assert.Equal(t, "min", verr.Tag)
	assert.Equal(t, "6", verr.Param)

	require.Error(t, ValidateField("phoneNumber", "12345", "phone"))
}
