package format

import (
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
)

// RecordHeader is the header that precedes every record. A record is laid
// out as
//
//	header | index array | user header | events
//
// where the index array, when present, holds one 4-byte event length (in
// bytes) per event.
type RecordHeader struct {
	Offset             int    // absolute file offset of the record
	RecordLength       uint32 // words, including the header
	RecordNumber       uint32
	HeaderLength       uint32 // words
	EventCount         uint32
	IndexArrayLength   uint32 // bytes
	BitInfo            uint32
	UserHeaderLength   uint32 // bytes
	Magic              uint32
	UncompressedLength uint32 // bytes
	CompressionWord    uint32
	UserRegister1      uint64
	UserRegister2      uint64
}

// ParseRecordHeader decodes and sanity-checks the record header at off.
func ParseRecordHeader(v buf.View, off int) (RecordHeader, error) {
	raw, err := v.Slice(off, HeaderSize)
	if err != nil {
		return RecordHeader{}, fmt.Errorf("record header at 0x%X: %w", off, ErrTruncatedHeader)
	}
	rv := buf.NewView(raw, v.Order())
	h := RecordHeader{
		Offset:             off,
		RecordLength:       rv.MustU32(RecordLengthOffset),
		RecordNumber:       rv.MustU32(RecordNumberOffset),
		HeaderLength:       rv.MustU32(RecordHeaderLengthOffset),
		EventCount:         rv.MustU32(RecordEventCountOffset),
		IndexArrayLength:   rv.MustU32(RecordIndexArrayLenOffset),
		BitInfo:            rv.MustU32(RecordBitInfoOffset),
		UserHeaderLength:   rv.MustU32(RecordUserHeaderLenOffset),
		Magic:              rv.MustU32(RecordMagicOffset),
		UncompressedLength: rv.MustU32(RecordUncompressedLenOffset),
		CompressionWord:    rv.MustU32(RecordCompressionOffset),
	}
	h.UserRegister1, _ = rv.U64(RecordUserRegister1Offset)
	h.UserRegister2, _ = rv.U64(RecordUserRegister2Offset)

	if h.Magic != MagicNumber {
		return RecordHeader{}, fmt.Errorf("record header at 0x%X: magic 0x%08X: %w", off, h.Magic, ErrInvalidMagic)
	}
	if h.HeaderLength < HeaderWords {
		return RecordHeader{}, fmt.Errorf("record header at 0x%X: header length %d words: %w",
			off, h.HeaderLength, ErrMalformedRecord)
	}
	if h.RecordLength < h.HeaderLength {
		return RecordHeader{}, fmt.Errorf("record at 0x%X: length %d words shorter than header: %w",
			off, h.RecordLength, ErrMalformedRecord)
	}
	if uint64(off)+uint64(h.RecordLength)*WordSize > uint64(v.Len()) {
		return RecordHeader{}, fmt.Errorf("record at 0x%X: length %d words exceeds file (0x%X): %w",
			off, h.RecordLength, v.Len(), ErrTruncated)
	}
	regions := uint64(h.HeaderLength)*WordSize + uint64(h.IndexArrayLength) +
		uint64(h.UserHeaderLength) + uint64(h.UserHeaderPadding())
	if regions > uint64(h.RecordLength)*WordSize {
		return RecordHeader{}, fmt.Errorf("record at 0x%X: header regions (%d bytes) exceed record (%d bytes): %w",
			off, regions, h.RecordLength*WordSize, ErrMalformedRecord)
	}
	return h, nil
}

// Version returns the format version from the low byte of the bit info word.
func (h RecordHeader) Version() uint32 { return h.BitInfo & VersionMask }

// IsLastRecord reports whether this record ends the file.
func (h RecordHeader) IsLastRecord() bool { return h.BitInfo&RecordBitLastRecord != 0 }

// HasDictionary reports whether the user header holds a dictionary.
func (h RecordHeader) HasDictionary() bool { return h.BitInfo&BitDictionary != 0 }

// HasFirstEvent reports whether the user header holds a "first event".
func (h RecordHeader) HasFirstEvent() bool { return h.BitInfo&RecordBitFirstEvent != 0 }

// EventType returns the CODA event type of the record's events.
func (h RecordHeader) EventType() EventType {
	return EventType((h.BitInfo >> RecordEventTypeShift) & RecordEventTypeMask)
}

// HeaderType returns bits 28-31 of the bit info word.
func (h RecordHeader) HeaderType() HeaderType {
	return HeaderType((h.BitInfo >> HeaderTypeShift) & HeaderTypeMask)
}

// CompressionType returns the compression algorithm id (0 = none).
func (h RecordHeader) CompressionType() uint32 {
	return (h.CompressionWord >> CompressionTypeShift) & CompressionTypeMask
}

// CompressedLength returns the compressed data length in words.
func (h RecordHeader) CompressedLength() uint32 { return h.CompressionWord & CompressedLengthMask }

// IsCompressed reports whether the record's data region is compressed.
func (h RecordHeader) IsCompressed() bool { return h.CompressionType() != CompressionNone }

// TotalBytes is the full record size in bytes.
func (h RecordHeader) TotalBytes() int { return int(h.RecordLength) * WordSize }

// IndexArrayStart is the absolute offset of the index array.
func (h RecordHeader) IndexArrayStart() int { return h.Offset + int(h.HeaderLength)*WordSize }

// UserHeaderStart is the absolute offset of the user header.
func (h RecordHeader) UserHeaderStart() int { return h.IndexArrayStart() + int(h.IndexArrayLength) }

// UserHeaderPadding is the number of bytes padding the user header to a
// word boundary.
func (h RecordHeader) UserHeaderPadding() int {
	return int((h.BitInfo >> UserHeaderPadShift) & UserHeaderPadMask)
}

// ContentStart is the absolute offset of the first event.
func (h RecordHeader) ContentStart() int {
	return h.UserHeaderStart() + int(h.UserHeaderLength) + h.UserHeaderPadding()
}

// End is the absolute offset one past the record's last byte.
func (h RecordHeader) End() int { return h.Offset + h.TotalBytes() }
