package callbacks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/guard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

type visit struct {
	pattern string
	params  common.Params
}

func newTestRouter(t *testing.T, patterns ...string) (*Router, *[]visit) {
	t.Helper()

	r := newRouter(&callbacktypes.Handler{Logger: zap.NewNop()}, guard.Default())
	visits := &[]visit{}
	for _, pattern := range patterns {
		pattern := pattern
		r.Handle(pattern, func(_ *common.HandlerContext, p common.Params) {
			*visits = append(*visits, visit{pattern: pattern, params: p})
		})
	}
	return r, visits
}

func contextFor(s *session.Session) *common.HandlerContext {
	return &common.HandlerContext{
		Ctx:     context.Background(),
		Handler: &callbacktypes.Handler{Logger: zap.NewNop()},
		Session: s,
	}
}

func TestMatchPrefersLiteralSegments(t *testing.T) {
	r, visits := newTestRouter(t,
		"/admin/users/:id",
		"/admin/users/keyword",
		"/admin/users/:id/delete",
		"/admin/users/role/:role",
	)
	super := &session.Session{User: model.User{Roles: []string{model.RoleSuperAdmin}}}

	r.Navigate(contextFor(super), "/admin/users/keyword")
	r.Navigate(contextFor(super), "/admin/users/15")
	r.Navigate(contextFor(super), "/admin/users/role/ROLE_DOCTOR?page=2")

	require.Len(t, *visits, 3)
	assert.Equal(t, "/admin/users/keyword", (*visits)[0].pattern)

	assert.Equal(t, "/admin/users/:id", (*visits)[1].pattern)
	id, err := (*visits)[1].params.Int64("id")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	assert.Equal(t, "/admin/users/role/:role", (*visits)[2].pattern)
	assert.Equal(t, model.RoleDoctor, (*visits)[2].params.String("role"))
	assert.Equal(t, 2, (*visits)[2].params.Page())
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	r, visits := newTestRouter(t, "/login", "/admin/appointments")

	r.Navigate(contextFor(nil), "/admin/appointments")

	require.Len(t, *visits, 1)
	assert.Equal(t, "/login", (*visits)[0].pattern)
	assert.Equal(t, "/admin/appointments", (*visits)[0].params.QueryString("from"))
}

func TestGuardSendsPatientToLanding(t *testing.T) {
	r, visits := newTestRouter(t, "/patient", "/admin/clinics/:id/delete")
	patient := &session.Session{User: model.User{Roles: []string{model.RolePatient}}}

	r.Navigate(contextFor(patient), "/admin/clinics/5/delete")

	require.Len(t, *visits, 1)
	assert.Equal(t, "/patient", (*visits)[0].pattern)
}

func TestRootRoute(t *testing.T) {
	r, visits := newTestRouter(t, "/", "/find-doctor")

	r.Navigate(contextFor(nil), "/")
	r.Navigate(contextFor(nil), "/find-doctor?page=1")

	require.Len(t, *visits, 2)
	assert.Equal(t, "/", (*visits)[0].pattern)
	assert.Equal(t, 1, (*visits)[1].params.Page())
}
