package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/eviokit/evio"
)

func TestRecordsCommand_Table(t *testing.T) {
	resetFlags()
	args := []string{testFilePath(t, evio.BigEndian)}

	output, err := captureOutput(t, runRecordsFn(args))
	require.NoError(t, err)
	t.Logf("Records output:\n%s", output)

	assertContains(t, output, []string{"0x38", "roc-raw", "evio-record", "true", "false"})
}

func TestRecordsCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	args := []string{testFilePath(t, evio.LittleEndian)}

	output, err := captureOutput(t, runRecordsFn(args))
	require.NoError(t, err)

	var recs []recordInfo
	require.NoError(t, json.Unmarshal([]byte(output), &recs))
	require.Len(t, recs, 2)
	require.Equal(t, 56, recs[0].Offset)
	require.Equal(t, uint32(2), recs[0].Events)
	require.Equal(t, uint32(8), recs[0].IndexBytes)
	require.False(t, recs[0].Last)
	require.True(t, recs[1].Last)
	require.Equal(t, recs[0].Offset+int(recs[0].LengthWords)*4, recs[1].Offset)
}

func TestRecordsCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true
	output, err := captureOutput(t, runRecordsFn([]string{testFilePath(t, evio.BigEndian)}))
	require.NoError(t, err)
	require.Empty(t, output)
}

func runRecordsFn(args []string) func() error {
	return func() error { return runRecords(args) }
}
