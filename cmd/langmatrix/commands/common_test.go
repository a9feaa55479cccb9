package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOutputDir_CLIFlagWins(t *testing.T) {
	require.Equal(t, "cli-dir", ResolveOutputDir("cli-dir", "cfg-dir"))
	require.Equal(t, "cfg-dir", ResolveOutputDir("", "cfg-dir"))
}

func TestTitleFromSlug(t *testing.T) {
	cases := []struct {
		slug string
		want string
	}{
		{"generics-static-types", "Generics Static Types"},
		{"constant_evaluation", "Constant Evaluation"},
		{"types/optional-chaining", "Optional Chaining"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, titleFromSlug(tc.slug))
	}
}
