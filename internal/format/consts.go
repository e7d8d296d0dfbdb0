// Package format houses low-level decoders for the EVIO v6 file format. The
// goal is to keep parsing focused and allocation-free, and independent from
// the public API so higher-level packages can orchestrate the data in a more
// ergonomic form.
//
// Every multi-byte field is stored in the file's byte order, which is
// discovered from the magic word of the file header.
package format

const (
	// WordSize is the size of an EVIO word in bytes. All lengths declared in
	// words are multiplied by this to obtain byte counts.
	WordSize = 4

	// MagicNumber appears at word 7 of the file header and of every record
	// header. Reading it back in the wrong byte order yields 0x0001DAC0.
	MagicNumber uint32 = 0xC0DA0100

	// FileTypeEVIO is the "EVIO" ASCII file type id at word 0 of the file header.
	FileTypeEVIO uint32 = 0x4556494F

	// Version is the only format version this package decodes.
	Version = 6

	// HeaderWords is the fixed length of both the file header and a record
	// header. Writers may declare a longer header; never a shorter one.
	HeaderWords = 14
	HeaderSize  = HeaderWords * WordSize

	// DefaultMaxNestingDepth bounds recursion into nested containers.
	DefaultMaxNestingDepth = 64
)

// File header field offsets (bytes).
//
//	Offset  Size  Field
//	------  ----  ---------------------------------------------
//	 0x00    4    file type id ("EVIO")
//	 0x04    4    file number
//	 0x08    4    header length (words)
//	 0x0C    4    record count
//	 0x10    4    index array length (bytes)
//	 0x14    4    bit info + version
//	 0x18    4    user header length (bytes)
//	 0x1C    4    magic number 0xC0DA0100
//	 0x20    8    user register
//	 0x28    8    trailer position
//	 0x30    4    user int 1
//	 0x34    4    user int 2
const (
	FileTypeIDOffset        = 0x00
	FileNumberOffset        = 0x04
	FileHeaderLengthOffset  = 0x08
	FileRecordCountOffset   = 0x0C
	FileIndexArrayLenOffset = 0x10
	FileBitInfoOffset       = 0x14
	FileUserHeaderLenOffset = 0x18
	FileMagicOffset         = 0x1C
	FileUserRegisterOffset  = 0x20
	FileTrailerPosOffset    = 0x28
	FileUserInt1Offset      = 0x30
	FileUserInt2Offset      = 0x34
)

// Record header field offsets (bytes), relative to the record start.
//
//	Offset  Size  Field
//	------  ----  ---------------------------------------------
//	 0x00    4    record length (words, inclusive)
//	 0x04    4    record number
//	 0x08    4    header length (words)
//	 0x0C    4    event count
//	 0x10    4    index array length (bytes)
//	 0x14    4    bit info + version
//	 0x18    4    user header length (bytes)
//	 0x1C    4    magic number 0xC0DA0100
//	 0x20    4    uncompressed data length (bytes)
//	 0x24    4    compression type (4 bits) | compressed length (28 bits, words)
//	 0x28    8    user register 1
//	 0x30    8    user register 2
const (
	RecordLengthOffset          = 0x00
	RecordNumberOffset          = 0x04
	RecordHeaderLengthOffset    = 0x08
	RecordEventCountOffset      = 0x0C
	RecordIndexArrayLenOffset   = 0x10
	RecordBitInfoOffset         = 0x14
	RecordUserHeaderLenOffset   = 0x18
	RecordMagicOffset           = 0x1C
	RecordUncompressedLenOffset = 0x20
	RecordCompressionOffset     = 0x24
	RecordUserRegister1Offset   = 0x28
	RecordUserRegister2Offset   = 0x30
)

// Bit info word layout shared by file and record headers.
const (
	VersionMask = 0xFF

	// BitDictionary marks a dictionary in the user header (both headers).
	BitDictionary = 1 << 8

	// FileBitFirstEvent and FileBitTrailerWithIndex only apply to file headers.
	FileBitFirstEvent       = 1 << 9
	FileBitTrailerWithIndex = 1 << 10

	// RecordBitLastRecord marks the final record of a file or stream.
	RecordBitLastRecord = 1 << 9
	// RecordBitFirstEvent marks a record carrying the "first event".
	RecordBitFirstEvent = 1 << 14

	// UserHeaderPadShift locates the 2-bit count of padding bytes that
	// follow the user header so the first event is word aligned.
	UserHeaderPadShift = 20
	UserHeaderPadMask  = 0x3

	RecordEventTypeShift = 10
	RecordEventTypeMask  = 0xF

	HeaderTypeShift = 28
	HeaderTypeMask  = 0xF

	CompressionTypeShift = 28
	CompressedLengthMask = 0x0FFFFFFF
	CompressionTypeMask  = 0xF
	CompressionNone      = 0
	CompressionLZ4       = 1
	CompressionLZ4Best   = 2
	CompressionGzip      = 3
)

// CompressionName names a record compression type.
func CompressionName(t uint32) string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionLZ4Best:
		return "lz4-best"
	case CompressionGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// HeaderType identifies what kind of header a file or record header is
// (bits 28-31 of the bit info word).
type HeaderType uint8

const (
	HeaderTypeEvioRecord       HeaderType = 0
	HeaderTypeEvioFile         HeaderType = 1
	HeaderTypeEvioFileExtended HeaderType = 2
	HeaderTypeEvioTrailer      HeaderType = 3
	HeaderTypeHipoRecord       HeaderType = 4
	HeaderTypeHipoFile         HeaderType = 5
	HeaderTypeHipoFileExtended HeaderType = 6
	HeaderTypeHipoTrailer      HeaderType = 7
)

func (t HeaderType) String() string {
	switch t {
	case HeaderTypeEvioRecord:
		return "evio-record"
	case HeaderTypeEvioFile:
		return "evio-file"
	case HeaderTypeEvioFileExtended:
		return "evio-file-extended"
	case HeaderTypeEvioTrailer:
		return "evio-trailer"
	case HeaderTypeHipoRecord:
		return "hipo-record"
	case HeaderTypeHipoFile:
		return "hipo-file"
	case HeaderTypeHipoFileExtended:
		return "hipo-file-extended"
	case HeaderTypeHipoTrailer:
		return "hipo-trailer"
	default:
		return "unknown"
	}
}

// IsTrailer reports whether the header closes a file.
func (t HeaderType) IsTrailer() bool {
	return t == HeaderTypeEvioTrailer || t == HeaderTypeHipoTrailer
}

// EventType is the CODA event type carried in bits 10-13 of a record's bit
// info word.
type EventType uint8

const (
	EventTypeROCRaw        EventType = 0
	EventTypePhysics       EventType = 1
	EventTypePartial       EventType = 2
	EventTypeDisentangled  EventType = 3
	EventTypeUser          EventType = 4
	EventTypeControl       EventType = 5
	EventTypeMixed         EventType = 6
	EventTypeROCRawStream  EventType = 8
	EventTypePhysicsStream EventType = 9
	EventTypeOther         EventType = 15
)

func (t EventType) String() string {
	switch t {
	case EventTypeROCRaw:
		return "roc-raw"
	case EventTypePhysics:
		return "physics"
	case EventTypePartial:
		return "partial-physics"
	case EventTypeDisentangled:
		return "disentangled-physics"
	case EventTypeUser:
		return "user"
	case EventTypeControl:
		return "control"
	case EventTypeMixed:
		return "mixed"
	case EventTypeROCRawStream:
		return "roc-raw-streaming"
	case EventTypePhysicsStream:
		return "physics-streaming"
	case EventTypeOther:
		return "other"
	default:
		return "unknown"
	}
}
