package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

func TestAfterLogin(t *testing.T) {
	doctor := &session.Session{User: model.User{Roles: []string{model.RoleDoctor}}}

	assert.Equal(t, "/admin/appointments", AfterLogin("/admin/appointments", doctor))
	assert.Equal(t, "/doctor", AfterLogin("", doctor))
	assert.Equal(t, "/doctor", AfterLogin("/", doctor))
	assert.Equal(t, "/doctor", AfterLogin("/login?from=/x", doctor))
}

func TestEscapeMessage(t *testing.T) {
	assert.Equal(t, "a &amp; b", escapeMessage("  a & b "))
}
