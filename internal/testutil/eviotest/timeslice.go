package eviotest

import (
	"github.com/joshuapare/eviokit/internal/format"
)

// Streaming tags used by CODA ROC time-slice banks.
const (
	StreamInfoTag      = 0xFF30
	TimeSliceSegTag    = 0x31
	AggregationInfoTag = 0x41
)

// Payload is one payload bank of a time slice.
type Payload struct {
	Port   uint8
	Lane   uint8
	Bond   bool
	Module uint8
	Data   []uint32
}

// TimeSlice describes a ROC time-slice bank.
type TimeSlice struct {
	RocID     uint16
	Status    uint8
	Frame     uint32
	Timestamp uint64
	Payloads  []Payload
}

// PayloadDescriptor packs p into the 16-bit aggregation info entry.
func PayloadDescriptor(p Payload) uint16 {
	d := uint16(p.Port&0x1F) | uint16(p.Lane&0x3)<<5 | uint16(p.Module&0xF)<<8
	if p.Bond {
		d |= 1 << 7
	}
	return d
}

// StreamInfo encodes the stream info bank of ts.
func (e Encoder) StreamInfo(ts TimeSlice) []byte {
	tss := e.Segment(TimeSliceSegTag, format.TypeUint32,
		e.Words(ts.Frame, uint32(ts.Timestamp), uint32(ts.Timestamp>>32)))
	descs := make([]uint16, 0, len(ts.Payloads))
	for _, p := range ts.Payloads {
		descs = append(descs, PayloadDescriptor(p))
	}
	ais := e.Segment(AggregationInfoTag, format.TypeUshort16, e.Uint16s(descs...))
	return e.Container(StreamInfoTag, format.TypeSegment, ts.Status, tss, ais)
}

// TimeSlice encodes a complete ROC time-slice bank.
func (e Encoder) TimeSlice(ts TimeSlice) []byte {
	children := [][]byte{e.StreamInfo(ts)}
	for _, p := range ts.Payloads {
		children = append(children, e.Bank(uint16(p.Port), format.TypeUint32, ts.Status, e.Words(p.Data...)))
	}
	return e.Container(ts.RocID, format.TypeBank, ts.Status, children...)
}
