package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagBuilder(t *testing.T) {
	command := &cobra.Command{Use: "test"}

	NewFlagBuilder(command).
		String("flag-builder-address", ":8080", "the address").
		Bind("flag-builder-address").
		Env("FLAG_BUILDER_ADDRESS").
		Flag().
		Duration("flag-builder-timeout", 10*time.Second, "the timeout").
		Bind("flag-builder-timeout").
		Flag().
		Bool("flag-builder-seed", false, "seed").
		Bind("flag-builder-seed")

	require.NotNil(t, command.Flags().Lookup("flag-builder-address"))
	assert.Equal(t, ":8080", viper.GetString("flag-builder-address"))
	assert.Equal(t, 10*time.Second, viper.GetDuration("flag-builder-timeout"))

	require.NoError(t, os.Setenv("FLAG_BUILDER_ADDRESS", ":9999"))
	defer os.Unsetenv("FLAG_BUILDER_ADDRESS")
	assert.Equal(t, ":9999", viper.GetString("flag-builder-address"))

	require.NoError(t, command.Flags().Set("flag-builder-seed", "true"))
	assert.True(t, viper.GetBool("flag-builder-seed"))
}
