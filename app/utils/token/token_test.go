package token

import (
	"testing"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, err := m.Issue(&models.User{ID: 12, Role: models.RoleSeller})
	require.NoError(t, err)

	id, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)
}

func TestParseRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)
	expired := NewManager("test-secret", -time.Minute)

	foreign, err := other.Issue(&models.User{ID: 1})
	require.NoError(t, err)
	stale, err := expired.Issue(&models.User{ID: 1})
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"wrong secret": foreign,
		"expired":      stale,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
