package public

import (
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			data = append(data, button.CallbackData)
		}
	}
	return data
}

func TestHomeScreenMenus(t *testing.T) {
	_, anon := BuildHomeScreen(nil)
	assert.Contains(t, callbacks(anon), "/login")
	assert.NotContains(t, callbacks(anon), "/admin")

	admin := &session.Session{User: model.User{FullName: "Lan", Roles: []string{model.RoleAdmin}}}
	text, kb := BuildHomeScreen(admin)
	assert.Contains(t, text, "Lan")
	assert.Contains(t, callbacks(kb), "/admin")
	assert.Contains(t, callbacks(kb), "/logout")
	assert.NotContains(t, callbacks(kb), "/doctor")
}

func TestFindDoctorScreenPages(t *testing.T) {
	var doctors []model.Doctor
	for i := int64(1); i <= 7; i++ {
		doctors = append(doctors, model.Doctor{DoctorID: i, FullName: "Bác sĩ", Price: decimal.NewFromInt(200000)})
	}

	text, kb := BuildFindDoctorScreen(doctors, search.Criteria{}, FilterLabels{}, 1)
	data := callbacks(kb)

	assert.Contains(t, text, "Tìm thấy 7 bác sĩ")
	assert.Contains(t, data, "/doctors/6")
	assert.Contains(t, data, "/doctors/7")
	assert.NotContains(t, data, "/doctors/1")
	assert.Contains(t, data, "/find-doctor?page=0")
	assert.NotContains(t, data, "/find-doctor/reset")
}

func TestFindDoctorScreenShowsFilters(t *testing.T) {
	criteria := search.Criteria{Keyword: "<thai>", SpecialtyID: "2"}
	text, kb := BuildFindDoctorScreen(nil, criteria, FilterLabels{Specialty: "Tim mạch"}, 0)

	require.True(t, strings.Contains(text, "&lt;thai&gt;"))
	assert.Contains(t, text, "Tim mạch")
	assert.Contains(t, text, "Không tìm thấy")
	assert.Contains(t, callbacks(kb), "/find-doctor/reset")
}
