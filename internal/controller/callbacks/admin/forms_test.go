package admin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

func TestClinicScreenOffersFieldEdits(t *testing.T) {
	text, kb := BuildClinicScreen(model.Clinic{ID: 2, Name: "Phòng khám <A>", Address: "Hà Nội"})
	data := callbacks(kb)

	assert.Contains(t, text, "Phòng khám &lt;A&gt;")
	for _, key := range []string{"name", "address", "phone", "description"} {
		assert.Contains(t, data, "/admin/clinics/2/edit/"+key)
	}
	assert.Contains(t, data, "/admin/clinics/2/delete")
}

func TestClinicsListLinksToCard(t *testing.T) {
	_, kb := BuildClinicsScreen([]model.Clinic{{ID: 2, Name: "Phòng khám A"}}, 0)
	assert.Contains(t, callbacks(kb), "/admin/clinics/2")

	_, kb = BuildSpecialtiesScreen([]model.Specialty{{ID: 3, Name: "Nhi khoa"}}, 0)
	assert.Contains(t, callbacks(kb), "/admin/specialties/3")
	assert.Contains(t, callbacks(kb), "/admin/specialties/3/delete")
}

func TestApplyClinicFieldKeepsOthers(t *testing.T) {
	req := model.NewClinicRequest(model.Clinic{Name: "A", Address: "Hà Nội", PhoneNumber: "0281234567"})

	require.NoError(t, ApplyClinicField(&req, "address", "  12 Lê Lợi "))
	assert.Equal(t, "12 Lê Lợi", req.Address)
	assert.Equal(t, "A", req.Name)
	assert.Equal(t, "0281234567", req.PhoneNumber)

	assert.ErrorIs(t, ApplyClinicField(&req, "imageUrls", "x"), common.ErrInvalidFormat)
}

func TestApplySpecialtyField(t *testing.T) {
	req := model.NewSpecialtyRequest(model.Specialty{Name: "Nhi", Description: "Trẻ em"})
	require.NoError(t, ApplySpecialtyField(&req, "name", "Nhi khoa"))
	assert.Equal(t, model.SpecialtyRequest{Name: "Nhi khoa", Description: "Trẻ em"}, req)
}

func TestDoctorScreenOffersEditsAndPickers(t *testing.T) {
	_, kb := BuildDoctorScreen(model.Doctor{DoctorID: 5, FullName: "BS. Thái"})
	data := callbacks(kb)

	assert.Contains(t, data, "/admin/doctors/5/edit/price")
	assert.Contains(t, data, "/admin/doctors/5/edit/degree")
	assert.Contains(t, data, "/admin/doctors/5/specialty")
	assert.Contains(t, data, "/admin/doctors/5/clinic")
	assert.Contains(t, data, "/admin/schedules/5")

	_, kb = BuildDoctorsScreen(nil, 0)
	assert.Contains(t, callbacks(kb), "/admin/doctors/add")
}

func TestApplyDoctorFieldParsesPrice(t *testing.T) {
	req := model.NewDoctorRequest(model.Doctor{UserID: 12, Price: decimal.NewFromInt(200000)})

	require.NoError(t, ApplyDoctorField(&req, "price", "350.000"))
	assert.True(t, req.Price.Equal(decimal.NewFromInt(350000)))

	err := ApplyDoctorField(&req, "price", "miễn phí")
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
	assert.True(t, req.Price.Equal(decimal.NewFromInt(350000)))
}

func TestPickScreenMarksCurrentChoice(t *testing.T) {
	options := specialtyOptions([]model.Specialty{{ID: 1, Name: "Nhi"}, {ID: 3, Name: "Tim mạch"}}, 3)
	_, kb := buildPickScreen("🏷", "Chọn:", options, "/admin/doctors/5/specialty", "/admin/doctors/5")

	require.NotEmpty(t, kb.InlineKeyboard)
	assert.Equal(t, "Nhi", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "✅ Tim mạch", kb.InlineKeyboard[0][1].Text)
	assert.Contains(t, callbacks(kb), "/admin/doctors/5/specialty/3")
	assert.Contains(t, callbacks(kb), "/admin/doctors/5")
}

func TestDoctorDraftForExistingUser(t *testing.T) {
	draft := &DoctorDraft{
		UserID: 12,
		Req: model.DoctorRegistrationRequest{
			FullName:    "BS. Lan",
			SpecialtyID: 3,
			ClinicID:    7,
			Price:       decimal.NewFromInt(300000),
		},
	}

	req := draft.ProfileRequest()
	assert.Equal(t, int64(12), req.UserID)
	assert.Equal(t, int64(3), req.SpecialtyID)
	assert.Equal(t, int64(7), req.ClinicID)
	assert.Equal(t, "/admin/users/12", draft.CancelPath())

	assert.Equal(t, doctorsPath, (&DoctorDraft{}).CancelPath())
}

func TestUserScreenHidesSelfDestructiveActions(t *testing.T) {
	u := model.User{ID: 9, FullName: "Ngô Thu", Roles: []string{model.RoleDoctor}, IsActive: true}

	_, kb := BuildUserScreen(u, false)
	data := callbacks(kb)
	assert.Contains(t, data, "/admin/users/9/roles")
	assert.Contains(t, data, "/admin/users/9/active")
	assert.Contains(t, data, "/admin/users/9/permissions")
	assert.Contains(t, data, "/admin/users/9/doctor")
	assert.Contains(t, data, "/admin/users/9/edit/password")
	assert.Contains(t, data, "/admin/users/9/delete")

	_, kb = BuildUserScreen(u, true)
	data = callbacks(kb)
	assert.NotContains(t, data, "/admin/users/9/roles")
	assert.NotContains(t, data, "/admin/users/9/active")
	assert.NotContains(t, data, "/admin/users/9/delete")
	assert.Contains(t, data, "/admin/users/9/edit/name")
}

func TestRolesScreenTogglesAndSave(t *testing.T) {
	text, kb := BuildRolesScreen("Ngô Thu", []string{model.RoleAdmin}, "/admin/users/new/role", usersPath, "/admin/users/new/save")
	data := callbacks(kb)

	assert.Contains(t, text, "Ngô Thu")
	for _, role := range model.Roles {
		assert.Contains(t, data, "/admin/users/new/role/"+role)
	}
	assert.Contains(t, data, "/admin/users/new/save")
	assert.Equal(t, "⬜️ ", kb.InlineKeyboard[0][0].Text[:len("⬜️ ")])
	assert.Equal(t, "✅ ", kb.InlineKeyboard[0][1].Text[:len("✅ ")])

	_, kb = BuildRolesScreen("Ngô Thu", nil, "/admin/users/9/roles", "/admin/users/9", "")
	assert.NotContains(t, callbacks(kb), "/admin/users/new/save")
}

func TestPermissionsScreenUsesIndexes(t *testing.T) {
	u := model.User{ID: 9, FullName: "Ngô Thu", ExtraPermissions: []string{"USER_WRITE"}}
	_, kb := BuildPermissionsScreen(u, []string{"APPOINTMENT_READ", "USER_WRITE"})

	assert.Equal(t, "⬜️ APPOINTMENT_READ", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "/admin/users/9/permissions/0", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "✅ USER_WRITE", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "/admin/users/9/permissions/1", kb.InlineKeyboard[1][0].CallbackData)

	text, _ := BuildPermissionsScreen(u, nil)
	assert.Contains(t, text, "chưa có quyền")
}

func TestApplyUserFieldChecksPassword(t *testing.T) {
	req := model.NewUserRequest(model.User{FullName: "Ngô Thu", Email: "thu@example.com", Roles: []string{model.RoleAdmin}})

	err := ApplyUserField(&req, "password", "123")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, req.Password)

	require.NoError(t, ApplyUserField(&req, "password", "secret1"))
	assert.Equal(t, "secret1", req.Password)
	require.NoError(t, ApplyUserField(&req, "phone", " 0901234567 "))
	assert.Equal(t, "0901234567", req.PhoneNumber)
}
