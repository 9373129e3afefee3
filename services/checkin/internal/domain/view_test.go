package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCheckInView_GatesContent(t *testing.T) {
	s, ok := ResolveSession("magic-token-123", fixture())
	require.True(t, ok)

	open := NewCheckInView(s, GateOpen, "2024-02-01")
	require.NotNil(t, open.Question)
	require.Len(t, open.Answers, 2)
	require.Empty(t, open.Notice)

	early := NewCheckInView(s, GateTooEarly, "2024-01-31")
	require.Nil(t, early.Question)
	require.Empty(t, early.Answers)
	require.Contains(t, early.Notice, "2024-02-01")

	closed := NewCheckInView(s, GateClosed, "2024-02-02")
	require.Nil(t, closed.Question)
	require.NotEmpty(t, closed.Notice)
}

func TestCheckInView_HidesMagicToken(t *testing.T) {
	s, ok := ResolveSession("magic-token-123", SeedCollections(time.Now()))
	require.True(t, ok)

	raw, err := json.Marshal(NewCheckInView(s, GateOpen, "x"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "magic-token-123")
}
