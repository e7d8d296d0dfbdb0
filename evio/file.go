package evio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/mmfile"
)

// File is an opened EVIO v6 file. The file header is decoded and every
// record header is scanned once at Open; after that the File is immutable
// and safe for concurrent readers. Banks are decoded on demand.
type File struct {
	path    string
	view    buf.View
	release func() error
	opts    OpenOptions
	log     *zap.Logger
	header  format.FileHeader
	records []int
	cache   *decodeCache

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Open maps the file at path read-only and scans its record structure. Any
// failure releases the mapping; no partially scanned File is returned.
func Open(path string, opts OpenOptions) (*File, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Msg: fmt.Sprintf("open %s", path), Err: err}
	}
	f, err := newFile(path, data, release, opts)
	if err != nil {
		if release != nil {
			_ = release()
		}
		return nil, err
	}
	return f, nil
}

// OpenBytes creates a File backed by b. b must not be modified while the
// File is in use.
func OpenBytes(b []byte, opts OpenOptions) (*File, error) {
	return newFile("", b, nil, opts)
}

func newFile(path string, data []byte, release func() error, opts OpenOptions) (*File, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	if path != "" {
		log = log.With(zap.String("path", path))
	}

	hdr, err := format.ParseFileHeader(data)
	if err != nil {
		log.Error("file header decode failed", zap.Error(err), zap.String("dump", hexDump(data, 0, format.HeaderSize)))
		return nil, wrapErr("decode file header", err)
	}

	f := &File{
		path:    path,
		view:    buf.NewView(data, hdr.Order),
		release: release,
		opts:    opts,
		log:     log,
		header:  hdr,
	}
	if err := f.scan(); err != nil {
		return nil, wrapErr("scan records", err)
	}
	cache, err := newDecodeCache(opts.CacheSize)
	if err != nil {
		return nil, &Error{Kind: KindState, Msg: "create decode cache", Err: err}
	}
	f.cache = cache

	log.Debug("opened",
		zap.Stringer("order", hdr.Order),
		zap.Int("size", len(data)),
		zap.Int("records", len(f.records)),
		zap.Uint32("declared_records", hdr.RecordCount))
	return f, nil
}

// Close releases the mapping. It is safe to call more than once; only the
// first call does any work. Close must not race with in-flight reads.
func (f *File) Close() error {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		if f.release != nil {
			f.closeErr = f.release()
		}
		if f.cache != nil {
			f.cache.purge()
		}
		f.view = buf.View{}
	})
	return f.closeErr
}

func (f *File) ensureOpen() error {
	if f.closed.Load() {
		return &Error{Kind: KindState, Msg: "file is closed", Err: ErrClosed}
	}
	return nil
}

// Path returns the path given to Open, or "" for OpenBytes.
func (f *File) Path() string { return f.path }

// Size returns the file size in bytes.
func (f *File) Size() int { return f.view.Len() }

// Order returns the file's byte order.
func (f *File) Order() Order { return f.header.Order }

// Header returns the decoded file header.
func (f *File) Header() FileHeader { return f.header }

// RecordCount returns the number of records found by the scan.
func (f *File) RecordCount() int { return len(f.records) }

// RecordOffsets returns a copy of the absolute offset of every record.
func (f *File) RecordOffsets() []int {
	out := make([]int, len(f.records))
	copy(out, f.records)
	return out
}

// Bytes returns n raw bytes at absolute offset off, without copying. The
// slice is valid until Close.
func (f *File) Bytes(off, n int) ([]byte, error) {
	if err := f.ensureOpen(); err != nil {
		return nil, err
	}
	b, err := f.view.Slice(off, n)
	if err != nil {
		return nil, &Error{Kind: KindIndex, Msg: fmt.Sprintf("bytes [0x%X,+%d)", off, n), Err: err}
	}
	return b, nil
}
