package funcs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemplateFuncs(t *testing.T) {
	require.Equal(t, "Gold", toTitle("gold"))
	require.Equal(t, "Yes", yesno(true))
	require.Equal(t, "No", yesno(false))
	require.Equal(t, "85%", percent(0.85))
	require.Equal(t, "90%", percent(0.9))
}
