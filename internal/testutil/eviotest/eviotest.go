// Package eviotest builds small in-memory EVIO v6 images for tests, in
// either byte order.
package eviotest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// Encoder writes structures in a fixed byte order.
type Encoder struct {
	Order buf.Order
}

// Orders is both byte orders, for table-driven tests.
var Orders = []buf.Order{buf.LittleEndian, buf.BigEndian}

func (e Encoder) bo() binary.ByteOrder { return e.Order.ByteOrder() }

// Words encodes ws as consecutive 32-bit words.
func (e Encoder) Words(ws ...uint32) []byte {
	out := make([]byte, len(ws)*format.WordSize)
	for i, w := range ws {
		e.bo().PutUint32(out[i*format.WordSize:], w)
	}
	return out
}

// Uint16s encodes vs as 16-bit values, unpadded.
func (e Encoder) Uint16s(vs ...uint16) []byte {
	out := make([]byte, len(vs)*2)
	for i, v := range vs {
		e.bo().PutUint16(out[i*2:], v)
	}
	return out
}

func padTo4(content []byte) ([]byte, uint8) {
	pad := (format.WordSize - len(content)%format.WordSize) % format.WordSize
	if pad == 0 {
		return content, 0
	}
	out := make([]byte, len(content)+pad)
	copy(out, content)
	return out, uint8(pad)
}

// Bank encodes a bank with the given content, padding it to a word boundary
// and recording the padding in the header.
func (e Encoder) Bank(tag uint16, typ format.DataType, num uint8, content []byte) []byte {
	content, pad := padTo4(content)
	length := uint32(len(content)/format.WordSize) + 1
	w1 := uint32(tag)<<16 | uint32(pad&0x3)<<14 | uint32(typ&0x3F)<<8 | uint32(num)
	return append(e.Words(length, w1), content...)
}

// Container encodes a container bank holding children.
func (e Encoder) Container(tag uint16, typ format.DataType, num uint8, children ...[]byte) []byte {
	return e.Bank(tag, typ, num, concat(children...))
}

// Segment encodes a segment with a one-word header.
func (e Encoder) Segment(tag uint8, typ format.DataType, content []byte) []byte {
	content, pad := padTo4(content)
	length := uint32(len(content) / format.WordSize)
	w0 := uint32(tag)<<24 | uint32(pad&0x3)<<22 | uint32(typ&0x3F)<<16 | length
	return append(e.Words(w0), content...)
}

// TagSegment encodes a tagsegment with a one-word header.
func (e Encoder) TagSegment(tag uint16, typ format.DataType, content []byte) []byte {
	content, _ = padTo4(content)
	length := uint32(len(content) / format.WordSize)
	w0 := uint32(tag&0xFFF)<<20 | uint32(typ&0xF)<<16 | length
	return append(e.Words(w0), content...)
}

// Record describes one record to encode.
type Record struct {
	Number      uint32
	Events      [][]byte
	OmitIndex   bool // leave the index array out
	UserHeader  []byte
	Last        bool
	EventType   format.EventType
	HeaderType  format.HeaderType
	Compression uint32
	// Mutate edits the encoded record before it is appended.
	Mutate func(rec []byte)
}

// Record encodes r.
func (e Encoder) Record(r Record) []byte {
	var index []byte
	if !r.OmitIndex {
		for _, ev := range r.Events {
			index = append(index, e.Words(uint32(len(ev)))...)
		}
	}
	user, userPad := padTo4(r.UserHeader)
	events := concat(r.Events...)

	bitInfo := uint32(format.Version) |
		uint32(userPad)<<format.UserHeaderPadShift |
		uint32(r.EventType)<<format.RecordEventTypeShift |
		uint32(r.HeaderType)<<format.HeaderTypeShift
	if r.Last {
		bitInfo |= format.RecordBitLastRecord
	}

	total := format.HeaderSize + len(index) + len(user) + len(events)
	hdr := make([]byte, format.HeaderSize)
	put := func(off int, v uint32) { e.bo().PutUint32(hdr[off:], v) }
	put(format.RecordLengthOffset, uint32(total/format.WordSize))
	put(format.RecordNumberOffset, r.Number)
	put(format.RecordHeaderLengthOffset, format.HeaderWords)
	put(format.RecordEventCountOffset, uint32(len(r.Events)))
	put(format.RecordIndexArrayLenOffset, uint32(len(index)))
	put(format.RecordBitInfoOffset, bitInfo)
	put(format.RecordUserHeaderLenOffset, uint32(len(r.UserHeader)))
	put(format.RecordMagicOffset, format.MagicNumber)
	put(format.RecordUncompressedLenOffset, uint32(len(events)))
	put(format.RecordCompressionOffset, r.Compression<<format.CompressionTypeShift)

	out := concat(hdr, index, user, events)
	if r.Mutate != nil {
		r.Mutate(out)
	}
	return out
}

// File describes a whole file to encode.
type File struct {
	Version    uint32 // 0 selects format.Version
	IndexArray []byte
	UserHeader []byte
	Records    []Record
	// Mutate edits the encoded file header before records are appended.
	Mutate func(hdr []byte)
}

// File encodes f.
func (e Encoder) File(f File) []byte {
	version := f.Version
	if version == 0 {
		version = format.Version
	}
	user, userPad := padTo4(f.UserHeader)

	hdr := make([]byte, format.HeaderSize)
	put := func(off int, v uint32) { e.bo().PutUint32(hdr[off:], v) }
	put(format.FileTypeIDOffset, format.FileTypeEVIO)
	put(format.FileNumberOffset, 1)
	put(format.FileHeaderLengthOffset, format.HeaderWords)
	put(format.FileRecordCountOffset, uint32(len(f.Records)))
	put(format.FileIndexArrayLenOffset, uint32(len(f.IndexArray)))
	put(format.FileBitInfoOffset, version|uint32(userPad)<<format.UserHeaderPadShift|
		uint32(format.HeaderTypeEvioFile)<<format.HeaderTypeShift)
	put(format.FileUserHeaderLenOffset, uint32(len(f.UserHeader)))
	put(format.FileMagicOffset, format.MagicNumber)
	if f.Mutate != nil {
		f.Mutate(hdr)
	}

	parts := [][]byte{hdr, f.IndexArray, user}
	for _, r := range f.Records {
		parts = append(parts, e.Record(r))
	}
	return concat(parts...)
}

// WriteFile writes data into a fresh temp dir and returns the path.
func WriteFile(tb testing.TB, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.evio")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("WriteFile: %v", err)
	}
	return path
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
