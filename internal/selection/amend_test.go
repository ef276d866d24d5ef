package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmendRules(t *testing.T) {
	tests := []struct {
		mode               AmendMode
		combineF, combineT bool
		revertF, revertT   bool
	}{
		{Replace, true, true, false, false},
		{Append, true, true, false, true},
		{Remove, false, false, false, true},
		{Invert, true, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			require.Equal(t, tt.combineF, tt.mode.Combine(false), "combine(false)")
			require.Equal(t, tt.combineT, tt.mode.Combine(true), "combine(true)")
			require.Equal(t, tt.revertF, tt.mode.Revert(false), "revert(false)")
			require.Equal(t, tt.revertT, tt.mode.Revert(true), "revert(true)")
		})
	}
}

func TestAmendNextCycle(t *testing.T) {
	require.Equal(t, Remove, Append.Next())
	require.Equal(t, Invert, Remove.Next())
	require.Equal(t, Append, Invert.Next())
	require.Equal(t, Replace, Replace.Next(), "Replace is outside the cycle")
}

func TestAmendDescribe(t *testing.T) {
	require.Equal(t, "VISUAL", Replace.Describe())
	require.Equal(t, "VISUAL (append)", Append.Describe())
	require.Equal(t, "VISUAL (remove)", Remove.Describe())
	require.Equal(t, "VISUAL (invert)", Invert.Describe())
}

func TestParseAmendMode(t *testing.T) {
	for _, m := range []AmendMode{Replace, Append, Remove, Invert} {
		got, ok := ParseAmendMode(m.String())
		require.True(t, ok)
		require.Equal(t, m, got)
	}

	_, ok := ParseAmendMode("xor")
	require.False(t, ok)
}

func TestAmendInvalidFallsBackToReplace(t *testing.T) {
	bad := AmendMode(9)
	require.False(t, bad.Valid())
	require.Equal(t, "unknown", bad.String())
	require.True(t, bad.Combine(false))
	require.False(t, bad.Revert(true))
}
