package evio

import (
	"fmt"
)

// CODA streaming tags.
const (
	// StreamInfoTag identifies the stream info bank, the first child of a
	// ROC time-slice bank.
	StreamInfoTag uint16 = 0xFF30
	// TimeSliceSegmentTag identifies the segment holding the frame number
	// and 64-bit timestamp.
	TimeSliceSegmentTag uint16 = 0x31
	// AggregationInfoTag identifies the segment of 16-bit payload descriptors.
	AggregationInfoTag uint16 = 0x41

	timeSliceSegmentWords = 3
)

// PayloadInfo is one 16-bit aggregation descriptor:
//
//	bits 0-4   payload port
//	bits 5-6   lane id
//	bit  7     bond
//	bits 8-11  module id
type PayloadInfo struct {
	Port     uint8
	Lane     uint8
	Bond     bool
	ModuleID uint8
}

func decodePayloadInfo(w uint16) PayloadInfo {
	return PayloadInfo{
		Port:     uint8(w & 0x1F),
		Lane:     uint8((w >> 5) & 0x3),
		Bond:     w&(1<<7) != 0,
		ModuleID: uint8((w >> 8) & 0xF),
	}
}

// StreamInfoBank is the metadata child of a ROC time-slice bank.
type StreamInfoBank struct {
	*Bank
	FrameNumber  uint32
	Timestamp    uint64
	PayloadInfos []PayloadInfo
}

// PayloadBank is one per-port data bank of a ROC time-slice bank.
type PayloadBank struct {
	*Bank
	Port uint16
	// Info is the matching aggregation descriptor, by position; HasInfo is
	// false when the stream info bank lists fewer descriptors than payloads.
	Info    PayloadInfo
	HasInfo bool
}

// RocTimeSliceBank aggregates one readout controller's data for a time
// slice: a stream info bank followed by one or more payload banks.
type RocTimeSliceBank struct {
	*Bank
	RocID        uint16
	StreamStatus uint8
	StreamInfo   *StreamInfoBank
	Payloads     []*PayloadBank
}

func shapeErr(msg string, args ...any) error {
	return &Error{Kind: KindShape, Msg: fmt.Sprintf(msg, args...), Err: ErrUnexpectedBankShape}
}

// NewRocTimeSliceBank reinterprets a decoded bank as a ROC time-slice bank.
// It fails with ErrUnexpectedBankShape when the child signatures do not match.
func NewRocTimeSliceBank(b *Bank) (*RocTimeSliceBank, error) {
	if b == nil {
		return nil, shapeErr("nil bank")
	}
	if b.Kind != KindBank || !isBankOfBanks(b.Type) {
		return nil, shapeErr("ROC bank 0x%X: type %s is not a bank of banks", b.Tag, b.Type)
	}
	if len(b.Children) < 2 {
		return nil, shapeErr("ROC bank 0x%X: %d children, need stream info and payloads", b.Tag, len(b.Children))
	}

	sib, err := newStreamInfoBank(b.Children[0])
	if err != nil {
		return nil, err
	}

	ts := &RocTimeSliceBank{
		Bank:         b,
		RocID:        b.Tag,
		StreamStatus: b.Num,
		StreamInfo:   sib,
		Payloads:     make([]*PayloadBank, 0, len(b.Children)-1),
	}
	for i, c := range b.Children[1:] {
		if c.IsContainer() {
			return nil, shapeErr("ROC bank 0x%X: payload %d (tag 0x%X) is a %s container", b.Tag, i, c.Tag, c.Type)
		}
		pb := &PayloadBank{Bank: c, Port: c.Tag}
		if i < len(sib.PayloadInfos) {
			pb.Info, pb.HasInfo = sib.PayloadInfos[i], true
		}
		ts.Payloads = append(ts.Payloads, pb)
	}
	return ts, nil
}

// DecodeRocTimeSliceBank decodes the bank at off in b and reinterprets it.
func DecodeRocTimeSliceBank(b []byte, off int, order Order) (*RocTimeSliceBank, error) {
	bank, err := DecodeBank(b, off, order)
	if err != nil {
		return nil, err
	}
	return NewRocTimeSliceBank(bank)
}

func isBankOfBanks(t DataType) bool {
	k, ok := t.ChildKind()
	return ok && k == KindBank
}

func newStreamInfoBank(b *Bank) (*StreamInfoBank, error) {
	if b.Tag != StreamInfoTag {
		return nil, shapeErr("stream info bank: tag 0x%X, want 0x%X", b.Tag, StreamInfoTag)
	}
	if k, ok := b.Type.ChildKind(); !ok || k != KindSegment {
		return nil, shapeErr("stream info bank: type %s is not a bank of segments", b.Type)
	}
	if len(b.Children) == 0 {
		return nil, shapeErr("stream info bank: no time slice segment")
	}

	tss := b.Children[0]
	if tss.Tag != TimeSliceSegmentTag || tss.Type != TypeUint32 {
		return nil, shapeErr("time slice segment: tag 0x%X type %s", tss.Tag, tss.Type)
	}
	words := tss.Uint32s()
	if len(words) < timeSliceSegmentWords {
		return nil, shapeErr("time slice segment: %d words, need %d", len(words), timeSliceSegmentWords)
	}

	sib := &StreamInfoBank{
		Bank:        b,
		FrameNumber: words[0],
		Timestamp:   uint64(words[2])<<32 | uint64(words[1]),
	}
	for _, seg := range b.Children[1:] {
		if seg.Tag != AggregationInfoTag || seg.Type != TypeUshort16 {
			continue
		}
		for _, w := range seg.Uint16s() {
			sib.PayloadInfos = append(sib.PayloadInfos, decodePayloadInfo(w))
		}
	}
	return sib, nil
}
