// Package buf contains bounds-checked, endian-aware helpers for decoding
// fields out of a read-only byte buffer.
package buf

import (
	"encoding/binary"
	"fmt"
)

// Order is the byte order of a file. EVIO files are never mixed-endian, so a
// single Order is chosen when the file header is decoded and reused for every
// nested structure.
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// ByteOrder returns the encoding/binary implementation for o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// View is a read-only window over b that decodes integers in a fixed order.
// The zero value is an empty little-endian view.
type View struct {
	b     []byte
	order Order
}

// NewView returns a View over b using order o. b is not copied.
func NewView(b []byte, o Order) View {
	return View{b: b, order: o}
}

// Len returns the number of bytes in the view.
func (v View) Len() int { return len(v.b) }

// Order returns the byte order used by the view.
func (v View) Order() Order { return v.order }

// Bytes returns the underlying buffer. Callers must not modify it.
func (v View) Bytes() []byte { return v.b }

// Slice returns the zero-copy range [off, off+n).
func (v View) Slice(off, n int) ([]byte, error) {
	s, ok := Slice(v.b, off, n)
	if !ok {
		return nil, v.oob(off, n)
	}
	return s, nil
}

// U16 reads a 16-bit integer at off.
func (v View) U16(off int) (uint16, error) {
	s, err := v.Slice(off, 2)
	if err != nil {
		return 0, err
	}
	return v.order.ByteOrder().Uint16(s), nil
}

// U32 reads a 32-bit integer at off.
func (v View) U32(off int) (uint32, error) {
	s, err := v.Slice(off, 4)
	if err != nil {
		return 0, err
	}
	return v.order.ByteOrder().Uint32(s), nil
}

// U64 reads a 64-bit integer at off.
func (v View) U64(off int) (uint64, error) {
	s, err := v.Slice(off, 8)
	if err != nil {
		return 0, err
	}
	return v.order.ByteOrder().Uint64(s), nil
}

// MustU32 reads a 32-bit integer at off, which the caller has already
// bounds-checked. It panics otherwise.
func (v View) MustU32(off int) uint32 {
	return v.order.ByteOrder().Uint32(v.b[off : off+4])
}

func (v View) oob(off, n int) error {
	return fmt.Errorf("%w: read %d bytes at 0x%X (len 0x%X)", ErrOutOfBounds, n, off, len(v.b))
}
