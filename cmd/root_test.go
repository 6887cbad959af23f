package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"update", "categories", "logos", "convert"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "mapdata", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestUpdateCommand_Flags(t *testing.T) {
	for _, name := range []string{"csv", "xlsx", "out"} {
		require.NotNil(t, updateCmd.Flags().Lookup(name), "update command should have --%s flag", name)
	}
}

func TestLogosCommand_Flags(t *testing.T) {
	require.NotNil(t, logosCmd.Flags().Lookup("csv"))
	require.NotNil(t, logosCmd.Flags().Lookup("output"))
}

func TestConvertCommand_Flags(t *testing.T) {
	require.NotNil(t, convertCmd.Flags().Lookup("csv"))
	require.NotNil(t, convertCmd.Flags().Lookup("xlsx"))
}
