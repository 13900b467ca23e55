package cmd

import (
	"testing"

	rootcmd "github.com/brave-intl/restpipe/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsRestCommandIsServed(t *testing.T) {
	command, _, err := rootcmd.RootCmd.Find([]string{"serve", "accounts", "rest"})
	require.NoError(t, err)
	assert.Equal(t, accountsRestCmd, command)

	for _, name := range []string{"api-version", "correlation-from-caller-context", "sentry-dsn"} {
		assert.NotNil(t, command.Flags().Lookup(name), name)
	}
	// inherited from serve
	assert.NotNil(t, command.InheritedFlags().Lookup("address"))
}
