package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestCreateUserRequiresPasswordAndRole(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewUserService(client, nil, zap.NewNop())

	req := model.UserRequest{FullName: "Ngô Thu", Email: "thu@example.com", Roles: []string{model.RoleAdmin}}
	_, err := svc.CreateUser(context.Background(), req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Field)

	req.Password = "secret1"
	req.Roles = nil
	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoRoles)

	req.Roles = []string{"ROLE_ROOT"}
	_, err = svc.CreateUser(context.Background(), req)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "oneof", verr.Tag)

	assert.Empty(t, fb.Calls())
}

func TestUpdateUserSendsPermissions(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := NewUserService(client, nil, zap.NewNop())

	var got map[string]any
	fb.handle(http.MethodPut, "/admin/users/9", func(w http.ResponseWriter, r *http.Request) {
		decodeBody(t, r, &got)
		_, _ = w.Write([]byte(`{"id":9,"roles":["ROLE_ADMIN"]}`))
	})

	req := model.NewUserRequest(model.User{ID: 9, FullName: "Ngô Thu", Email: "thu@example.com", Roles: []string{model.RoleAdmin}})
	_, err := svc.UpdateUser(context.Background(), 9, req)
	require.NoError(t, err)

	assert.Equal(t, []any{}, got["extraPermissions"])
	assert.NotContains(t, got, "password")

	req.ExtraPermissions = model.Toggle(req.ExtraPermissions, "USER_WRITE")
	_, err = svc.UpdateUser(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, []any{"USER_WRITE"}, got["extraPermissions"])
}

func TestToggleDoesNotShareBacking(t *testing.T) {
	roles := make([]string, 2, 4)
	roles[0], roles[1] = model.RoleAdmin, model.RoleDoctor

	added := model.Toggle(roles, model.RolePatient)
	removed := model.Toggle(roles, model.RoleAdmin)

	assert.Equal(t, []string{model.RoleAdmin, model.RoleDoctor, model.RolePatient}, added)
	assert.Equal(t, []string{model.RoleDoctor}, removed)
	assert.Equal(t, []string{model.RoleAdmin, model.RoleDoctor}, roles)
}
