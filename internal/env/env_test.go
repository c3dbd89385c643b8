package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("TL_STRING", "value")
	t.Setenv("TL_INT", "42")
	t.Setenv("TL_BOOL", "true")
	t.Setenv("TL_DURATION", "90m")

	require.Equal(t, "value", GetString("TL_STRING", "default"))
	require.Equal(t, 42, GetInt("TL_INT", 1))
	require.True(t, GetBool("TL_BOOL", false))
	require.Equal(t, 90*time.Minute, GetDuration("TL_DURATION", time.Second))
}

func TestGetters_Defaults(t *testing.T) {
	require.Equal(t, "default", GetString("TL_UNSET_STRING", "default"))
	require.Equal(t, 7, GetInt("TL_UNSET_INT", 7))
	require.False(t, GetBool("TL_UNSET_BOOL", false))
	require.Equal(t, time.Second, GetDuration("TL_UNSET_DURATION", time.Second))
}

func TestGetInt_PanicsOnGarbage(t *testing.T) {
	t.Setenv("TL_INT", "forty-two")

	require.Panics(t, func() { GetInt("TL_INT", 1) })
}
