package format

import (
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
)

// DataType is the 6-bit content type carried in every structure header.
type DataType uint8

const (
	TypeUnknown32  DataType = 0x00
	TypeUint32     DataType = 0x01
	TypeFloat32    DataType = 0x02
	TypeCharStar8  DataType = 0x03
	TypeShort16    DataType = 0x04
	TypeUshort16   DataType = 0x05
	TypeChar8      DataType = 0x06
	TypeUchar8     DataType = 0x07
	TypeDouble64   DataType = 0x08
	TypeLong64     DataType = 0x09
	TypeUlong64    DataType = 0x0A
	TypeInt32      DataType = 0x0B
	TypeTagSegment DataType = 0x0C
	TypeSegmentB   DataType = 0x0D // "alsosegment"
	TypeBankB      DataType = 0x0E // "alsobank"
	TypeComposite  DataType = 0x0F
	TypeBank       DataType = 0x10
	TypeSegment    DataType = 0x20
)

var dataTypeNames = map[DataType]string{
	TypeUnknown32:  "unknown32",
	TypeUint32:     "uint32",
	TypeFloat32:    "float32",
	TypeCharStar8:  "string",
	TypeShort16:    "short16",
	TypeUshort16:   "ushort16",
	TypeChar8:      "char8",
	TypeUchar8:     "uchar8",
	TypeDouble64:   "double64",
	TypeLong64:     "long64",
	TypeUlong64:    "ulong64",
	TypeInt32:      "int32",
	TypeTagSegment: "tagsegment",
	TypeSegmentB:   "segment",
	TypeBankB:      "bank",
	TypeComposite:  "composite",
	TypeBank:       "bank",
	TypeSegment:    "segment",
}

func (t DataType) String() string {
	if n, ok := dataTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type(0x%02X)", uint8(t))
}

// ChildKind reports which structure kind a container of type t holds. ok is
// false for leaf types.
func (t DataType) ChildKind() (Kind, bool) {
	switch t {
	case TypeBank, TypeBankB:
		return KindBank, true
	case TypeSegment, TypeSegmentB:
		return KindSegment, true
	case TypeTagSegment:
		return KindTagSegment, true
	default:
		return 0, false
	}
}

// IsContainer reports whether t holds child structures.
func (t DataType) IsContainer() bool {
	_, ok := t.ChildKind()
	return ok
}

// ElementSize is the width in bytes of one element of a leaf type.
func (t DataType) ElementSize() int {
	switch t {
	case TypeCharStar8, TypeChar8, TypeUchar8:
		return 1
	case TypeShort16, TypeUshort16:
		return 2
	case TypeDouble64, TypeLong64, TypeUlong64:
		return 8
	default:
		return WordSize
	}
}

// Kind distinguishes the three EVIO structure header layouts.
type Kind uint8

const (
	// KindBank has a two-word header:
	//	word 0: length (words following this one)
	//	word 1: tag(16) | pad(2) | type(6) | num(8)
	KindBank Kind = iota
	// KindSegment has a one-word header: tag(8) | pad(2) | type(6) | length(16).
	KindSegment
	// KindTagSegment has a one-word header: tag(12) | type(4) | length(16).
	KindTagSegment
)

func (k Kind) String() string {
	switch k {
	case KindBank:
		return "bank"
	case KindSegment:
		return "segment"
	case KindTagSegment:
		return "tagsegment"
	default:
		return "unknown"
	}
}

// HeaderBytes is the size of k's header.
func (k Kind) HeaderBytes() int {
	if k == KindBank {
		return 2 * WordSize
	}
	return WordSize
}

// StructureHeader is a decoded bank, segment or tagsegment header. Length
// follows the EVIO convention of counting the words after the first header
// word, so every structure spans (Length+1)*4 bytes.
type StructureHeader struct {
	Kind   Kind
	Length uint32
	Tag    uint16
	Pad    uint8
	Type   DataType
	Num    uint8
}

// ParseStructureHeader decodes a header of the given kind at off.
func ParseStructureHeader(v buf.View, off int, kind Kind) (StructureHeader, error) {
	raw, err := v.Slice(off, kind.HeaderBytes())
	if err != nil {
		return StructureHeader{}, fmt.Errorf("%s header at 0x%X: %w", kind, off, ErrTruncatedBank)
	}
	hv := buf.NewView(raw, v.Order())
	w0 := hv.MustU32(0)

	h := StructureHeader{Kind: kind}
	switch kind {
	case KindBank:
		w1 := hv.MustU32(WordSize)
		h.Length = w0
		h.Tag = uint16(w1 >> 16)
		h.Pad = uint8((w1 >> 14) & 0x3)
		h.Type = DataType((w1 >> 8) & 0x3F)
		h.Num = uint8(w1)
		if h.Length < 1 {
			return StructureHeader{}, fmt.Errorf("bank at 0x%X: length 0 cannot hold its header: %w",
				off, ErrMalformedBank)
		}
	case KindSegment:
		h.Tag = uint16(w0 >> 24)
		h.Pad = uint8((w0 >> 22) & 0x3)
		h.Type = DataType((w0 >> 16) & 0x3F)
		h.Length = w0 & 0xFFFF
	case KindTagSegment:
		h.Tag = uint16(w0 >> 20)
		h.Type = DataType((w0 >> 16) & 0xF)
		h.Length = w0 & 0xFFFF
	default:
		return StructureHeader{}, fmt.Errorf("structure kind %d: %w", kind, ErrUnsupported)
	}
	return h, nil
}

// TotalBytes is the full size of the structure including its header.
func (h StructureHeader) TotalBytes() int { return (int(h.Length) + 1) * WordSize }

// ContentBytes is the size of the structure after its header.
func (h StructureHeader) ContentBytes() int { return h.TotalBytes() - h.Kind.HeaderBytes() }
