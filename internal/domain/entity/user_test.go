package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10, DefaultParameters())
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Equal(t, 97.0, u.Params.ThresholdPercentile)
}

func TestUser_SetState(t *testing.T) {
	u := NewUser(1, 10, DefaultParameters())
	u.SetState(StateAwaitingFrame)
	require.Equal(t, StateAwaitingFrame, u.State)
}
