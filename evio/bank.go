package evio

import (
	"errors"
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// Bank is one node of a decoded structure tree: a bank, segment or
// tagsegment. Containers carry Children; leaves carry Payload, a zero-copy
// slice of the underlying file. Banks returned by File may be shared through
// the decode cache and must be treated as read-only.
type Bank struct {
	StructureHeader

	// Offset is the absolute offset of the structure's first header word.
	Offset   int
	Children []*Bank
	Payload  []byte

	order buf.Order
}

// DecodeBank decodes the bank at off in b, recursing into containers.
func DecodeBank(b []byte, off int, order Order) (*Bank, error) {
	d := decoder{v: buf.NewView(b, order), maxDepth: defaultMaxDepth}
	bank, err := d.decode(off, len(b), format.KindBank, 0)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("decode bank at 0x%X", off), err)
	}
	return bank, nil
}

type decoder struct {
	v        buf.View
	maxDepth int
}

// decode reads the structure at off, which must end at or before limit.
// Children of a container start back to back right after its header and
// consume exactly its declared length.
func (d decoder) decode(off, limit int, kind format.Kind, depth int) (*Bank, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("%s at 0x%X nested deeper than %d: %w", kind, off, d.maxDepth, format.ErrMalformedBank)
	}
	h, err := format.ParseStructureHeader(d.v, off, kind)
	if err != nil {
		return nil, err
	}
	end := off + h.TotalBytes()
	if end > limit {
		if limit >= d.v.Len() {
			return nil, fmt.Errorf("%s at 0x%X (%d words) runs past buffer end 0x%X: %w",
				kind, off, h.Length, d.v.Len(), format.ErrTruncatedBank)
		}
		return nil, fmt.Errorf("%s at 0x%X (%d words) overruns parent end 0x%X: %w",
			kind, off, h.Length, limit, format.ErrMalformedBank)
	}

	b := &Bank{StructureHeader: h, Offset: off, order: d.v.Order()}
	start := off + kind.HeaderBytes()
	childKind, ok := h.Type.ChildKind()
	if !ok {
		b.Payload, _ = d.v.Slice(start, end-start)
		return b, nil
	}

	for cur := start; cur < end; {
		child, err := d.decode(cur, end, childKind, depth+1)
		if err != nil {
			return nil, err
		}
		b.Children = append(b.Children, child)
		cur += child.TotalBytes()
	}
	return b, nil
}

// Order returns the byte order the bank was decoded with.
func (b *Bank) Order() Order { return b.order }

// End returns the absolute offset one past the bank's last byte.
func (b *Bank) End() int { return b.Offset + b.TotalBytes() }

// IsContainer reports whether the bank holds child structures.
func (b *Bank) IsContainer() bool { return b.Type.IsContainer() }

// Data returns the payload with the header-declared trailing padding removed.
func (b *Bank) Data() []byte {
	n := len(b.Payload) - int(b.Pad)
	if n < 0 {
		n = 0
	}
	return b.Payload[:n]
}

// Count returns the number of leaf elements in the payload, or 0 for a
// container.
func (b *Bank) Count() int {
	if b.IsContainer() {
		return 0
	}
	return len(b.Data()) / b.Type.ElementSize()
}

// Uint32s decodes the payload as 32-bit words in the file's byte order.
func (b *Bank) Uint32s() []uint32 {
	data := b.Data()
	bo := b.order.ByteOrder()
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = bo.Uint32(data[i*4:])
	}
	return out
}

// Uint16s decodes the payload as 16-bit values in the file's byte order.
func (b *Bank) Uint16s() []uint16 {
	data := b.Data()
	bo := b.order.ByteOrder()
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = bo.Uint16(data[i*2:])
	}
	return out
}

// Uint64s decodes the payload as 64-bit values in the file's byte order.
func (b *Bank) Uint64s() []uint64 {
	data := b.Data()
	bo := b.order.ByteOrder()
	out := make([]uint64, len(data)/8)
	for i := range out {
		out[i] = bo.Uint64(data[i*8:])
	}
	return out
}

// Walk visits b and its descendants depth-first, parents before children.
// Returning ErrSkipChildren from fn skips the current bank's children; any
// other error stops the walk and is returned.
func (b *Bank) Walk(fn func(bank *Bank, depth int) error) error {
	return b.walk(fn, 0)
}

// ErrSkipChildren can be returned from a Walk callback to prune a subtree.
var ErrSkipChildren = errors.New("evio: skip children")

func (b *Bank) walk(fn func(*Bank, int) error, depth int) error {
	if err := fn(b, depth); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range b.Children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) String() string {
	return fmt.Sprintf("%s tag=0x%X type=%s num=%d len=%d @0x%X",
		b.Kind, b.Tag, b.Type, b.Num, b.Length, b.Offset)
}
