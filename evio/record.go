package evio

import (
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

func indexErr(what string, i, n int) error {
	return &Error{
		Kind: KindIndex,
		Msg:  fmt.Sprintf("%s index %d out of range [0,%d)", what, i, n),
		Err:  ErrIndexOutOfRange,
	}
}

func (f *File) recordHeader(i int) (format.RecordHeader, error) {
	if err := f.ensureOpen(); err != nil {
		return format.RecordHeader{}, err
	}
	if i < 0 || i >= len(f.records) {
		return format.RecordHeader{}, indexErr("record", i, len(f.records))
	}
	rh, err := format.ParseRecordHeader(f.view, f.records[i])
	if err != nil {
		return format.RecordHeader{}, wrapErr(fmt.Sprintf("record %d", i), err)
	}
	return rh, nil
}

// RecordHeader decodes the header of record i.
func (f *File) RecordHeader(i int) (RecordHeader, error) {
	return f.recordHeader(i)
}

// FindRecord returns the absolute [start, end) range of record i's event
// data: start is past the header, index array and user header; end is
// always the record's own declared end, never the next record's offset.
func (f *File) FindRecord(i int) (start, end int, err error) {
	rh, err := f.recordHeader(i)
	if err != nil {
		return 0, 0, err
	}
	return rh.ContentStart(), rh.End(), nil
}

// EventCount returns the event count declared by record i's header. It may
// be non-zero for records without an index array, whose events cannot be
// located; see EventOffsets.
func (f *File) EventCount(i int) (int, error) {
	rh, err := f.recordHeader(i)
	if err != nil {
		return 0, err
	}
	return int(rh.EventCount), nil
}

// EventOffsets returns the absolute offset of every event in record i,
// derived by prefix-summing the record's index array of event lengths. A
// record without an index array, and a trailer record, yields an empty
// slice: event boundaries are not discoverable without one.
func (f *File) EventOffsets(i int) ([]int, error) {
	rh, err := f.recordHeader(i)
	if err != nil {
		return nil, err
	}
	bounds, err := f.eventBounds(i, rh)
	if err != nil {
		return nil, err
	}
	offs := make([]int, len(bounds))
	for k, b := range bounds {
		offs[k] = b.start
	}
	return offs, nil
}

type span struct{ start, end int }

func (f *File) eventBounds(i int, rh format.RecordHeader) ([]span, error) {
	if rh.HeaderType().IsTrailer() {
		return []span{}, nil
	}
	if rh.IsCompressed() {
		return nil, &Error{
			Kind: KindUnsupported,
			Msg:  fmt.Sprintf("record %d: %s compression", i, format.CompressionName(rh.CompressionType())),
			Err:  ErrUnsupported,
		}
	}
	if rh.IndexArrayLength == 0 {
		return []span{}, nil
	}

	n := int(rh.IndexArrayLength) / format.WordSize
	idx := rh.IndexArrayStart()
	if _, err := buf.CheckListBounds(f.view.Len(), idx, n, format.WordSize); err != nil {
		return nil, wrapErr(fmt.Sprintf("record %d index array", i), err)
	}

	out := make([]span, 0, n)
	cur, end := rh.ContentStart(), rh.End()
	for k := range n {
		length := int(f.view.MustU32(idx + k*format.WordSize))
		if length == 0 || cur+length > end {
			return nil, wrapErr(fmt.Sprintf("record %d event %d", i, k),
				fmt.Errorf("length %d bytes at 0x%X overruns record end 0x%X: %w",
					length, cur, end, format.ErrMalformedRecord))
		}
		out = append(out, span{start: cur, end: cur + length})
		cur += length
	}
	return out, nil
}
