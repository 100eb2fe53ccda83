package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", User{ID: "u1", Name: "Ada", Email: "ada@site.co"}.DisplayName())
	assert.Equal(t, "ada@site.co", User{ID: "u1", Email: "ada@site.co"}.DisplayName())
	assert.Equal(t, "u1", User{ID: "u1"}.DisplayName())
}

func TestSessionAuthenticated(t *testing.T) {
	var none *Session
	assert.False(t, none.Authenticated())
	assert.False(t, (&Session{}).Authenticated())
	assert.True(t, (&Session{Token: "tok"}).Authenticated())
}
