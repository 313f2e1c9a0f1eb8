package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-u", "http://host", "-x", "junk"}, []string{"-u"})
	require.Equal(t, []string{"-u", "http://host"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--api-url=http://host", "--other=1"}, []string{"--api-url"})
	require.Equal(t, []string{"--api-url=http://host"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	// A bare flag followed by another flag keeps only the flag itself.
	got := FilterArgs([]string{"-v", "-u", "http://host"}, []string{"-v", "-u"})
	require.Equal(t, []string{"-v", "-u", "http://host"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "1", "-b"}, nil)
	require.Empty(t, got)
}
