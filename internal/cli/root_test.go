package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "registrar", cmd.Use)
	assert.NotNil(t, cmd.RunE, "root runs serve without a subcommand")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "seed"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()

	level := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, level)
	assert.Equal(t, "info", level.DefValue)

	format := cmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, format)
	assert.Equal(t, "json", format.DefValue)

	seed, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)
	file := seed.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "", file.DefValue)
}

func TestSubcommandsRejectArguments(t *testing.T) {
	cmd := NewRootCommand()
	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Error(t, migrate.Args(migrate, []string{"extra"}))
}
