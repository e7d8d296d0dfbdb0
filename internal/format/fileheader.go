package format

import (
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
)

// FileHeader is the fixed leading header of an EVIO v6 file. The magic word
// doubles as the endianness tag: whichever byte order reads it back as
// MagicNumber is the order of the whole file.
type FileHeader struct {
	Order            buf.Order
	FileTypeID       uint32
	FileNumber       uint32
	HeaderLength     uint32 // words
	RecordCount      uint32
	IndexArrayLength uint32 // bytes
	BitInfo          uint32
	UserHeaderLength uint32 // bytes
	Magic            uint32
	UserRegister     uint64
	TrailerPosition  uint64
	UserInt1         uint32
	UserInt2         uint32
}

// DetectOrder reads the magic word at off in both byte orders.
func DetectOrder(b []byte, off int) (buf.Order, error) {
	raw, ok := buf.Slice(b, off, WordSize)
	if !ok {
		return 0, fmt.Errorf("magic at 0x%X: %w", off, ErrTruncatedHeader)
	}
	switch MagicNumber {
	case buf.BigEndian.ByteOrder().Uint32(raw):
		return buf.BigEndian, nil
	case buf.LittleEndian.ByteOrder().Uint32(raw):
		return buf.LittleEndian, nil
	}
	return 0, fmt.Errorf("magic at 0x%X is % X: %w", off, raw, ErrInvalidMagic)
}

// ParseFileHeader validates and extracts the file header at the start of b.
func ParseFileHeader(b []byte) (FileHeader, error) {
	if len(b) < HeaderSize {
		return FileHeader{}, fmt.Errorf("file header (%d bytes): %w", len(b), ErrTruncatedHeader)
	}
	order, err := DetectOrder(b, FileMagicOffset)
	if err != nil {
		return FileHeader{}, fmt.Errorf("file header: %w", err)
	}
	v := buf.NewView(b, order)
	h := FileHeader{
		Order:            order,
		FileTypeID:       v.MustU32(FileTypeIDOffset),
		FileNumber:       v.MustU32(FileNumberOffset),
		HeaderLength:     v.MustU32(FileHeaderLengthOffset),
		RecordCount:      v.MustU32(FileRecordCountOffset),
		IndexArrayLength: v.MustU32(FileIndexArrayLenOffset),
		BitInfo:          v.MustU32(FileBitInfoOffset),
		UserHeaderLength: v.MustU32(FileUserHeaderLenOffset),
		Magic:            v.MustU32(FileMagicOffset),
		UserInt1:         v.MustU32(FileUserInt1Offset),
		UserInt2:         v.MustU32(FileUserInt2Offset),
	}
	h.UserRegister, _ = v.U64(FileUserRegisterOffset)
	h.TrailerPosition, _ = v.U64(FileTrailerPosOffset)

	if h.Version() != Version {
		return FileHeader{}, fmt.Errorf("file header version %d: %w", h.Version(), ErrUnsupportedVersion)
	}
	if h.HeaderLength < HeaderWords {
		return FileHeader{}, fmt.Errorf("file header length %d words: %w", h.HeaderLength, ErrMalformedHeader)
	}
	if uint64(h.HeaderLength)*WordSize > uint64(len(b)) {
		return FileHeader{}, fmt.Errorf("file header declares %d words, file has %d bytes: %w",
			h.HeaderLength, len(b), ErrTruncatedHeader)
	}
	return h, nil
}

// Version returns the format version from the low byte of the bit info word.
func (h FileHeader) Version() uint32 { return h.BitInfo & VersionMask }

// HeaderBytes returns the declared header length in bytes.
func (h FileHeader) HeaderBytes() int { return int(h.HeaderLength) * WordSize }

// FirstRecordOffset is where the first record header begins: after the
// header, the optional index array and the optional user header.
func (h FileHeader) FirstRecordOffset() int {
	return h.HeaderBytes() + int(h.IndexArrayLength) + int(h.UserHeaderLength) + h.UserHeaderPadding()
}

// UserHeaderPadding is the number of bytes padding the user header to a
// word boundary.
func (h FileHeader) UserHeaderPadding() int {
	return int((h.BitInfo >> UserHeaderPadShift) & UserHeaderPadMask)
}

// HasDictionary reports whether the user header holds a dictionary.
func (h FileHeader) HasDictionary() bool { return h.BitInfo&BitDictionary != 0 }

// HasFirstEvent reports whether the user header holds a "first event".
func (h FileHeader) HasFirstEvent() bool { return h.BitInfo&FileBitFirstEvent != 0 }

// HasTrailerWithIndex reports whether the trailer carries a record index.
func (h FileHeader) HasTrailerWithIndex() bool { return h.BitInfo&FileBitTrailerWithIndex != 0 }

// HeaderType returns bits 28-31 of the bit info word.
func (h FileHeader) HeaderType() HeaderType {
	return HeaderType((h.BitInfo >> HeaderTypeShift) & HeaderTypeMask)
}
