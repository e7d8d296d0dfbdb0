// Package evio provides read-only, zero-copy access to EVIO v6 files, the
// CODA data-acquisition format used in nuclear and particle physics readout.
//
// # File Structure
//
// An EVIO v6 file is laid out as
//
//	[file header] [index array?] [user header?] [record 0] ... [record N]
//
// and every record as
//
//	[record header] [index array?] [user header?] [event 0] ... [event M]
//
// Each event is a bank: a length-prefixed, tag/type/num-tagged node that is
// either a container of child structures (banks, segments or tagsegments)
// or a leaf carrying payload bytes.
//
// # Opening a File
//
//	f, err := evio.Open("run_001.evio", evio.OpenOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
// Open maps the file read-only (on unix), decodes the file header and walks
// every record header once. A corrupt header anywhere aborts Open, since
// record offsets are cumulative.
//
// # Reading Events
//
//	offs, _ := f.EventOffsets(0)          // needs the record's index array
//	bank, _ := f.EventBank(0, 0)          // generic tree
//	ts, ok, _ := f.Event(0, 0)            // ROC time-slice interpretation
//	if ok {
//	    fmt.Println(ts.RocID, ts.StreamInfo.Timestamp, len(ts.Payloads))
//	}
//
// Event returns ok == false, not an error, when an event cannot be decoded
// as a ROC time-slice bank. Index errors are always returned as errors of
// kind KindIndex wrapping ErrIndexOutOfRange.
//
// Decoded banks alias the mapped file and are only valid until Close.
package evio
