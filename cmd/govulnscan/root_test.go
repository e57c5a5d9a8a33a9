package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeProjectNameIsStableAndSafe(t *testing.T) {
	a := sanitizeProjectName("/tmp/some project/with spaces")
	b := sanitizeProjectName("/tmp/some project/with spaces")
	require.Equal(t, a, b)
	require.NotContains(t, a, " ")
	require.NotContains(t, a, "/")
}

func TestSanitizeProjectNameDefaultsWhenEmpty(t *testing.T) {
	require.NotEmpty(t, sanitizeProjectName(""))
}

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["scan"])
	require.True(t, names["index"])
	require.True(t, names["list"])
	require.True(t, names["clean"])
}
