package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

func withRoles(roles ...string) *session.Session {
	return &session.Session{TelegramID: 1, AccessToken: "t", User: model.User{ID: 1, Roles: roles}}
}

func TestResolve(t *testing.T) {
	g := Default()

	tests := []struct {
		name    string
		session *session.Session
		path    string
		want    Decision
	}{
		{name: "public page", session: nil, path: "/find-doctor", want: Decision{Allowed: true}},
		{name: "public prefix lookalike", session: nil, path: "/administrator", want: Decision{Allowed: true}},
		{name: "anonymous on admin", session: nil, path: "/admin/appointments", want: Decision{Redirect: "/login"}},
		{name: "anonymous on booking", session: nil, path: "/booking/3", want: Decision{Redirect: "/login"}},
		{name: "patient on admin", session: withRoles(model.RolePatient), path: "/admin/appointments", want: Decision{Redirect: "/patient"}},
		{name: "patient on admin root", session: withRoles(model.RolePatient), path: "/admin", want: Decision{Redirect: "/patient"}},
		{name: "doctor on patient", session: withRoles(model.RoleDoctor), path: "/patient/appointments", want: Decision{Redirect: "/doctor"}},
		{name: "admin on admin", session: withRoles(model.RoleAdmin), path: "/admin/clinics", want: Decision{Allowed: true}},
		{name: "admin on super admin area", session: withRoles(model.RoleAdmin), path: "/admin/users/5", want: Decision{Redirect: "/admin"}},
		{name: "super admin on users", session: withRoles(model.RoleSuperAdmin), path: "/admin/users?page=2", want: Decision{Allowed: true}},
		{name: "doctor on booking", session: withRoles(model.RoleDoctor), path: "/booking/3", want: Decision{Allowed: true}},
		{name: "no roles on doctor", session: withRoles(), path: "/doctor", want: Decision{Redirect: "/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.session, tt.path))
		})
	}
}

func TestPatientNeverReachesAdminContent(t *testing.T) {
	g := Default()
	patient := withRoles(model.RolePatient)

	for _, path := range []string{"/admin", "/admin/appointments", "/admin/users", "/admin/schedules/3/publish"} {
		d := g.Resolve(patient, path)
		assert.False(t, d.Allowed, path)
		assert.NotEqual(t, path, d.Redirect, path)
		assert.True(t, g.Resolve(patient, d.Redirect).Allowed, path)
	}
}

func TestLanding(t *testing.T) {
	assert.Equal(t, "/", Landing(nil))
	assert.Equal(t, "/admin", Landing(withRoles(model.RolePatient, model.RoleSuperAdmin)))
	assert.Equal(t, "/doctor", Landing(withRoles(model.RoleDoctor)))
	assert.Equal(t, "/patient", Landing(withRoles(model.RolePatient)))
}
