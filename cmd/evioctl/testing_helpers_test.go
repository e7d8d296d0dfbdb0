package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/testutil/eviotest"
)

// testFilePath writes a small two-record EVIO file and returns its path.
// Record 0 holds a generic bank and a ROC time slice; record 1 is last and
// holds one string bank.
func testFilePath(t *testing.T, order evio.Order) string {
	t.Helper()
	e := eviotest.Encoder{Order: order}
	slice := e.TimeSlice(eviotest.TimeSlice{
		RocID:     0x12,
		Status:    1,
		Frame:     99,
		Timestamp: 0x1_0000_0002,
		Payloads: []eviotest.Payload{
			{Port: 3, Module: 2, Data: []uint32{0xFEEDFACE}},
		},
	})
	data := e.File(eviotest.File{Records: []eviotest.Record{
		{Number: 1, Events: [][]byte{
			e.Container(0x200, format.TypeBank, 0,
				e.Bank(0x201, format.TypeUint32, 0, e.Words(0xCAFEBABE, 7))),
			slice,
		}},
		{Number: 2, Last: true, Events: [][]byte{
			e.Bank(0x300, format.TypeCharStar8, 0, []byte("hello\x00\x04\x04")),
		}},
	}})
	return eviotest.WriteFile(t, data)
}

// resetFlags restores global flag state between tests
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	noColor = true
	cacheSize = 0
	maxDepth = 0
	payloadBytes = 32
	eventsRecord = -1
	dumpRecord = -1
	dumpEvent = -1
	dumpNoPayload = false
	timesliceRecord = -1
	timesliceNoData = false
	hexOffset = 0
	hexLength = 64
	hexRecord = -1
	hexWords = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot block the pipe
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}

// writeRaw writes arbitrary bytes to a temp file
func writeRaw(t *testing.T, data []byte) string {
	t.Helper()
	return eviotest.WriteFile(t, data)
}
