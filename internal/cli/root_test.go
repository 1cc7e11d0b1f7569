package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRunsBot(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}
