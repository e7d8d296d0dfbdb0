package evio

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/testutil/eviotest"
)

// --- shared fixtures ---

func forEachOrder(t *testing.T, fn func(t *testing.T, e eviotest.Encoder)) {
	t.Helper()
	for _, o := range eviotest.Orders {
		t.Run(o.String(), func(t *testing.T) {
			fn(t, eviotest.Encoder{Order: o})
		})
	}
}

func openBytes(t *testing.T, data []byte) *File {
	t.Helper()
	f, err := OpenBytes(data, OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// opaqueBank is a generic leaf: length 3, tag 1, type 0, num 0, two words.
func opaqueBank(e eviotest.Encoder) []byte {
	return e.Bank(0x1, format.TypeUnknown32, 0, e.Words(0xCAFEBABE, 0x12345678))
}

func threeRecordFile(e eviotest.Encoder) []byte {
	return e.File(eviotest.File{Records: []eviotest.Record{
		{Number: 1, Events: [][]byte{opaqueBank(e)}},
		{Number: 2, Events: [][]byte{opaqueBank(e), opaqueBank(e)}},
		{Number: 3, Events: [][]byte{opaqueBank(e)}, Last: true},
	}})
}

// --- Open / scan ---

func TestOpenBytes_DetectsOrderAndScansRecords(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		f := openBytes(t, threeRecordFile(e))

		require.Equal(t, e.Order, f.Order())
		require.Equal(t, 3, f.RecordCount())
		require.Equal(t, uint32(format.Version), f.Header().Version())
		require.Equal(t, uint32(3), f.Header().RecordCount)
		require.Empty(t, f.Path())
	})
}

func TestRecordOffsets_ConsecutiveByDeclaredLength(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		f := openBytes(t, threeRecordFile(e))
		offs := f.RecordOffsets()
		require.Len(t, offs, 3)
		require.Equal(t, f.Header().FirstRecordOffset(), offs[0])

		for i := 0; i+1 < len(offs); i++ {
			rh, err := f.RecordHeader(i)
			require.NoError(t, err)
			require.False(t, rh.IsLastRecord())
			require.Equal(t, offs[i]+int(rh.RecordLength)*format.WordSize, offs[i+1])
		}
		last, err := f.RecordHeader(2)
		require.NoError(t, err)
		require.True(t, last.IsLastRecord())
		require.Equal(t, f.Size(), last.End())
	})
}

func TestRecordOffsets_ReturnsCopy(t *testing.T) {
	e := eviotest.Encoder{Order: LittleEndian}
	f := openBytes(t, threeRecordFile(e))
	offs := f.RecordOffsets()
	offs[0] = -1
	require.NotEqual(t, -1, f.RecordOffsets()[0])
}

func TestScan_StopsAtLastRecordFlag(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		data := threeRecordFile(e)
		// Bytes after the last record are not interpreted.
		data = append(data, make([]byte, 40)...)
		f := openBytes(t, data)
		require.Equal(t, 3, f.RecordCount())
	})
}

func TestScan_RunsToEndWithoutLastFlag(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		data := e.File(eviotest.File{Records: []eviotest.Record{
			{Events: [][]byte{opaqueBank(e)}},
			{Events: [][]byte{opaqueBank(e)}},
		}})
		f := openBytes(t, data)
		require.Equal(t, 2, f.RecordCount())
	})
}

func TestScan_SkipsFileIndexAndUserHeader(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		data := e.File(eviotest.File{
			IndexArray: e.Words(0, 0),
			UserHeader: []byte("dictionary!"), // 11 bytes, padded to 12
			Records:    []eviotest.Record{{Events: [][]byte{opaqueBank(e)}, Last: true}},
		})
		f := openBytes(t, data)
		require.Equal(t, format.HeaderSize+8+12, f.RecordOffsets()[0])
		require.Equal(t, 1, f.RecordCount())
	})
}

func TestOpen_InvalidMagic(t *testing.T) {
	e := eviotest.Encoder{Order: BigEndian}
	data := e.File(eviotest.File{
		Records: []eviotest.Record{{Events: [][]byte{opaqueBank(e)}}},
		Mutate: func(h []byte) {
			copy(h[format.FileMagicOffset:], []byte{0xDE, 0xAD, 0xBE, 0xEF})
		},
	})
	_, err := OpenBytes(data, OpenOptions{})
	require.ErrorIs(t, err, ErrInvalidMagic)
	require.True(t, IsKind(err, KindFormat))
}

func TestOpen_UnsupportedVersion(t *testing.T) {
	e := eviotest.Encoder{Order: LittleEndian}
	data := e.File(eviotest.File{Version: 4})
	_, err := OpenBytes(data, OpenOptions{})
	require.ErrorIs(t, err, ErrUnsupportedVersion)
	require.True(t, IsKind(err, KindFormat))
}

func TestOpen_ShortFile(t *testing.T) {
	_, err := OpenBytes(make([]byte, format.HeaderSize-1), OpenOptions{})
	require.ErrorIs(t, err, ErrTruncated)
	require.True(t, IsKind(err, KindFormat))
}

func TestOpen_BadRecordMagicAbortsScan(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		core, logs := observer.New(zap.ErrorLevel)
		data := e.File(eviotest.File{Records: []eviotest.Record{
			{Events: [][]byte{opaqueBank(e)}},
			{Events: [][]byte{opaqueBank(e)}, Mutate: func(rec []byte) {
				copy(rec[format.RecordMagicOffset:], make([]byte, 4))
			}},
		}})
		f, err := OpenBytes(data, OpenOptions{Logger: zap.New(core)})
		require.Nil(t, f)
		require.ErrorIs(t, err, ErrInvalidMagic)
		require.NotZero(t, logs.Len())
	})
}

func TestOpen_RecordPastEndOfFile(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		data := threeRecordFile(e)
		data = data[:len(data)-4]
		_, err := OpenBytes(data, OpenOptions{})
		require.ErrorIs(t, err, ErrTruncated)
	})
}

func TestOpen_MappedFile(t *testing.T) {
	forEachOrder(t, func(t *testing.T, e eviotest.Encoder) {
		path := eviotest.WriteFile(t, threeRecordFile(e))
		f, err := Open(path, OpenOptions{})
		require.NoError(t, err)
		defer f.Close()

		require.Equal(t, path, f.Path())
		require.Equal(t, 3, f.RecordCount())
		b, err := f.EventBank(1, 1)
		require.NoError(t, err)
		require.Equal(t, []uint32{0xCAFEBABE, 0x12345678}, b.Uint32s())
	})
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/nonexistent/path/run.evio", OpenOptions{})
	require.Error(t, err)
	require.True(t, IsKind(err, KindIO))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_CorruptMappedFileReleases(t *testing.T) {
	path := eviotest.WriteFile(t, []byte("not an evio file, just text padding it out to more than a header"))
	_, err := Open(path, OpenOptions{})
	require.ErrorIs(t, err, ErrInvalidMagic)
}

// --- Close ---

func TestClose_Idempotent(t *testing.T) {
	e := eviotest.Encoder{Order: LittleEndian}
	path := eviotest.WriteFile(t, threeRecordFile(e))
	f, err := Open(path, OpenOptions{CacheSize: 4})
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}

func TestClose_OperationsFailAfterClose(t *testing.T) {
	e := eviotest.Encoder{Order: BigEndian}
	f, err := OpenBytes(threeRecordFile(e), OpenOptions{})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = f.RecordHeader(0)
	require.ErrorIs(t, err, ErrClosed)
	require.True(t, IsKind(err, KindState))

	_, err = f.EventOffsets(0)
	require.ErrorIs(t, err, ErrClosed)

	_, _, err = f.FindRecord(0)
	require.ErrorIs(t, err, ErrClosed)

	ts, ok, err := f.Event(0, 0)
	require.Nil(t, ts)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrClosed)
}

func TestOpen_DebugLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := eviotest.Encoder{Order: LittleEndian}
	f, err := OpenBytes(threeRecordFile(e), OpenOptions{Logger: zap.New(core)})
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 3, logs.FilterMessage("record").Len())
	require.Equal(t, 1, logs.FilterMessage("opened").Len())
}

func TestBytes(t *testing.T) {
	e := eviotest.Encoder{Order: BigEndian}
	f := openBytes(t, threeRecordFile(e))

	b, err := f.Bytes(format.FileMagicOffset, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0xC0, 0xDA, 0x01, 0x00}, b)

	_, err = f.Bytes(f.Size()-2, 4)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.True(t, IsKind(err, KindIndex))
}
