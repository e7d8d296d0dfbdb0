package evio

import (
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/eviokit/internal/format"
)

const scanDumpBytes = 64

// scan walks record headers from the end of the file header to the record
// flagged last (or end of file), recording each record's offset. Offsets are
// cumulative, so the first bad header aborts the whole scan.
func (f *File) scan() error {
	off := f.header.FirstRecordOffset()
	size := f.view.Len()
	if off > size {
		return fmt.Errorf("file index array and user header end at 0x%X past file end 0x%X: %w",
			off, size, format.ErrTruncatedHeader)
	}

	for off < size {
		rh, err := format.ParseRecordHeader(f.view, off)
		if err != nil {
			f.log.Error("record scan failed",
				zap.Int("record", len(f.records)),
				zap.String("offset", fmt.Sprintf("0x%X", off)),
				zap.Error(err),
				zap.String("dump", hexDump(f.view.Bytes(), off, scanDumpBytes)))
			return err
		}
		f.records = append(f.records, off)
		f.log.Debug("record",
			zap.Int("record", len(f.records)-1),
			zap.String("offset", fmt.Sprintf("0x%X", off)),
			zap.Uint32("length_words", rh.RecordLength),
			zap.Uint32("events", rh.EventCount),
			zap.Bool("last", rh.IsLastRecord()))

		off += rh.TotalBytes()
		if rh.IsLastRecord() {
			break
		}
	}
	return nil
}

// hexDump renders up to n bytes of b starting at off.
func hexDump(b []byte, off, n int) string {
	if off < 0 || off >= len(b) {
		return ""
	}
	end := min(off+n, len(b))
	return hex.Dump(b[off:end])
}
