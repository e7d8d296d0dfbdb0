package evio

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/eviokit/internal/format"
)

// EventBank decodes event evt of record rec as a generic bank tree. The
// bank must fit inside the event's index-array length.
func (f *File) EventBank(rec, evt int) (*Bank, error) {
	rh, err := f.recordHeader(rec)
	if err != nil {
		return nil, err
	}
	if evt < 0 {
		return nil, indexErr(fmt.Sprintf("record %d event", rec), evt, int(rh.EventCount))
	}
	bounds, err := f.eventBounds(rec, rh)
	if err != nil {
		return nil, err
	}
	if evt < 0 || evt >= len(bounds) {
		return nil, indexErr(fmt.Sprintf("record %d event", rec), evt, len(bounds))
	}

	key := eventKey{rec: rec, evt: evt}
	if b, ok := f.cache.get(key); ok {
		return b, nil
	}

	sp := bounds[evt]
	d := decoder{v: f.view, maxDepth: f.opts.MaxDepth}
	b, err := d.decode(sp.start, sp.end, format.KindBank, 0)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("record %d event %d", rec, evt), err)
	}
	f.cache.add(key, b)
	return b, nil
}

// Event decodes event evt of record rec as a ROC time-slice bank. Index and
// state errors are returned as err. Any failure to decode the event itself
// is soft: ok is false and err is nil, so callers can probe event shapes
// without aborting.
func (f *File) Event(rec, evt int) (ts *RocTimeSliceBank, ok bool, err error) {
	b, err := f.EventBank(rec, evt)
	if err != nil {
		if IsKind(err, KindIndex) || IsKind(err, KindState) {
			return nil, false, err
		}
		f.log.Debug("event not decodable",
			zap.Int("record", rec), zap.Int("event", evt), zap.Error(err))
		return nil, false, nil
	}
	ts, err = NewRocTimeSliceBank(b)
	if err != nil {
		f.log.Debug("event is not a ROC time slice bank",
			zap.Int("record", rec), zap.Int("event", evt), zap.Error(err))
		return nil, false, nil
	}
	return ts, true, nil
}

// ParseFirstBankHeader decodes the bank starting at record rec's event data,
// bounded by the record's end. It works for records without an index array.
func (f *File) ParseFirstBankHeader(rec int) (*Bank, error) {
	start, end, err := f.FindRecord(rec)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, &Error{
			Kind: KindCorrupt,
			Msg:  fmt.Sprintf("record %d has no event data", rec),
			Err:  ErrMalformedRecord,
		}
	}
	d := decoder{v: f.view, maxDepth: f.opts.MaxDepth}
	b, err := d.decode(start, end, format.KindBank, 0)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("record %d first bank", rec), err)
	}
	return b, nil
}
