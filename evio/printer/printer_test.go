package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/testutil/eviotest"
)

var enc = eviotest.Encoder{Order: evio.BigEndian}

// testTree decodes a small event: a bank of a string leaf, a uint32 leaf
// and a segment container.
func testTree(t *testing.T) *evio.Bank {
	t.Helper()
	raw := enc.Container(0x100, format.TypeBank, 1,
		enc.Bank(0x1, format.TypeCharStar8, 0, []byte("run\x00cfg\x00\x04\x04\x04\x04")),
		enc.Bank(0x2, format.TypeUint32, 0, enc.Words(0xDEADBEEF, 1, 2, 3, 4, 5, 6, 7, 8, 9)),
		enc.Container(0x3, format.TypeSegment, 0,
			enc.Segment(0x4, format.TypeUint32, enc.Words(0xAB)),
		),
	)
	b, err := evio.DecodeBank(raw, 0, evio.BigEndian)
	require.NoError(t, err)
	return b
}

func testTimeSlice(t *testing.T) *evio.RocTimeSliceBank {
	t.Helper()
	raw := enc.TimeSlice(eviotest.TimeSlice{
		RocID:     2,
		Status:    1,
		Frame:     77,
		Timestamp: 123456789,
		Payloads: []eviotest.Payload{
			{Port: 1, Module: 4, Data: []uint32{0x1111}},
			{Port: 2, Lane: 1, Bond: true, Data: []uint32{0x2222, 0x3333}},
		},
	})
	ts, err := evio.DecodeRocTimeSliceBank(raw, 0, evio.BigEndian)
	require.NoError(t, err)
	return ts
}

func TestPrinter_PrintBank_Text(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, DefaultOptions())
	require.NoError(t, p.PrintBank(testTree(t)))

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.True(t, strings.HasPrefix(lines[0], "[bank] tag=0x100 type=bank"))
	require.Contains(t, output, "children=3")
	require.Contains(t, output, `"run"`)
	require.Contains(t, output, `"cfg"`)
	require.Contains(t, output, "    [segment] tag=0x4 type=uint32")
	require.Contains(t, output, "DEADBEEF")
	require.Contains(t, output, "(truncated, 40 total bytes)")
}

func TestPrinter_PrintBank_TextNoPayload(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowPayload = false
	p := New(&buf, opts)
	require.NoError(t, p.PrintBank(testTree(t)))

	output := buf.String()
	require.NotContains(t, output, "DEADBEEF")
	require.NotContains(t, output, `"run"`)
	require.Contains(t, output, "bytes=40 count=10")
}

func TestPrinter_PrintBank_MaxDepth(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MaxDepth = 1
	p := New(&buf, opts)
	require.NoError(t, p.PrintBank(testTree(t)))

	require.Equal(t, 1, strings.Count(buf.String(), "["))
}

func TestPrinter_PrintBank_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.MaxPayloadBytes = 0
	p := New(&buf, opts)
	require.NoError(t, p.PrintBank(testTree(t)))

	t.Logf("JSON output:\n%s", buf.String())

	var result jsonBank
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Equal(t, "bank", result.Kind)
	require.Equal(t, uint16(0x100), result.Tag)
	require.Len(t, result.Children, 3)
	require.Equal(t, []string{"run", "cfg"}, result.Children[0].Strings)
	require.Equal(t, 80, len(result.Children[1].Payload))
	require.False(t, result.Children[1].Truncated)
	require.Equal(t, 10, result.Children[1].Count)
	require.Zero(t, result.Count)
	require.Len(t, result.Children[2].Children, 1)
	require.Equal(t, "segment", result.Children[2].Children[0].Kind)
}

func TestPrinter_PrintBank_JSONMaxDepth(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.MaxDepth = 2
	p := New(&buf, opts)
	require.NoError(t, p.PrintBank(testTree(t)))

	var result jsonBank
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result.Children, 3)
	require.Empty(t, result.Children[2].Children)
	require.True(t, result.Children[1].Truncated)
}

func TestPrinter_PrintTimeSlice_Text(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, DefaultOptions())
	require.NoError(t, p.PrintTimeSlice(testTimeSlice(t)))

	output := buf.String()
	t.Logf("Time slice output:\n%s", output)
	require.Contains(t, output, "ROC 0x2 status=0x01 frame=77 timestamp=123456789 payloads=2")
	require.Contains(t, output, "port=1 bytes=4 module=4 lane=0 bond=false")
	require.Contains(t, output, "port=2 bytes=8 module=0 lane=1 bond=true")
	require.Contains(t, output, "0000222200003333")
}

func TestPrinter_PrintTimeSlice_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	p := New(&buf, opts)
	require.NoError(t, p.PrintTimeSlice(testTimeSlice(t)))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.EqualValues(t, 77, result["frame"])
	require.EqualValues(t, 123456789, result["timestamp"])
	payloads, ok := result["payloads"].([]any)
	require.True(t, ok)
	require.Len(t, payloads, 2)
	second := payloads[1].(map[string]any)
	require.Equal(t, true, second["bond"])
	require.Equal(t, "0000222200003333", second["payload"])
}
