package evio

import (
	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// Re-exported format types so callers can name what File returns.
type (
	FileHeader      = format.FileHeader
	RecordHeader    = format.RecordHeader
	StructureHeader = format.StructureHeader
	DataType        = format.DataType
	Kind            = format.Kind
	HeaderType      = format.HeaderType
	EventType       = format.EventType
	Order           = buf.Order
)

const (
	LittleEndian = buf.LittleEndian
	BigEndian    = buf.BigEndian

	KindBank       = format.KindBank
	KindSegment    = format.KindSegment
	KindTagSegment = format.KindTagSegment

	TypeUnknown32  = format.TypeUnknown32
	TypeUint32     = format.TypeUint32
	TypeFloat32    = format.TypeFloat32
	TypeCharStar8  = format.TypeCharStar8
	TypeShort16    = format.TypeShort16
	TypeUshort16   = format.TypeUshort16
	TypeChar8      = format.TypeChar8
	TypeUchar8     = format.TypeUchar8
	TypeDouble64   = format.TypeDouble64
	TypeLong64     = format.TypeLong64
	TypeUlong64    = format.TypeUlong64
	TypeInt32      = format.TypeInt32
	TypeTagSegment = format.TypeTagSegment
	TypeSegmentB   = format.TypeSegmentB
	TypeBankB      = format.TypeBankB
	TypeComposite  = format.TypeComposite
	TypeBank       = format.TypeBank
	TypeSegment    = format.TypeSegment

	defaultMaxDepth = format.DefaultMaxNestingDepth
)
