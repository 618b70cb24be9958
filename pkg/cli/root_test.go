package cli

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAllCommandsRegistered ensures every expected CLI command is registered
// on the root cobra command tree. If a new command is added to the source but
// not to the expected list (or vice versa), this test fails.
func TestAllCommandsRegistered(t *testing.T) {
	root := Root()

	expected := []string{
		"interactive",
		"request",
		"serve",
		"version",
	}

	children := root.Commands()
	got := make([]string, 0, len(children))
	for _, c := range children {
		got = append(got, c.Name())
	}
	sort.Strings(got)

	assert.Equal(t, expected, got)
}
