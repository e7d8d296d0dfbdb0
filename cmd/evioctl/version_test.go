package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, runVersion)
	require.NoError(t, err)
	assertContains(t, output, []string{"evioctl dev", "EVIO v6", "magic 0xC0DA0100", "compression none"})

	jsonOut = true
	output, err = captureOutput(t, runVersion)
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	require.Equal(t, 6, info.FormatVersion)
	require.Equal(t, "0xC0DA0100", info.Magic)
}
