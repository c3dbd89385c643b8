package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	var v Validator

	v.Check(NotBlank("ctr-1"), "Contractor ID is required")
	require.False(t, v.HasErrors())

	v.Check(Between(-1, 0, 100), "Completed jobs must be between 0 and 100")
	v.Check(In("platinum", "bronze", "silver", "gold"), "Unknown tier")

	require.True(t, v.HasErrors())
	require.Equal(t, []string{"Completed jobs must be between 0 and 100", "Unknown tier"}, v.Errors)
}

func TestHelpers(t *testing.T) {
	require.False(t, NotBlank("   "))
	require.True(t, MaxRunes("abc", 3))
	require.False(t, MaxRunes("abcd", 3))
	require.True(t, Between(25000.0, 0, 1e9))
	require.True(t, Matches("ctr_42-a", RgxContractorID))
	require.False(t, Matches("ctr 42", RgxContractorID))
	require.False(t, Matches("", RgxContractorID))
}
