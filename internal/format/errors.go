package format

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic indicates a header whose magic word did not match
	// MagicNumber in the expected byte order.
	ErrInvalidMagic = errors.New("format: invalid magic")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrTruncatedHeader is ErrTruncated scoped to a file or record header.
	ErrTruncatedHeader = fmt.Errorf("%w: header", ErrTruncated)
	// ErrTruncatedBank is ErrTruncated scoped to a bank, segment or tagsegment.
	ErrTruncatedBank = fmt.Errorf("%w: bank", ErrTruncated)
	// ErrMalformedHeader indicates a file header with impossible field values.
	ErrMalformedHeader = errors.New("format: malformed header")
	// ErrMalformedRecord indicates a record whose declared regions are inconsistent.
	ErrMalformedRecord = errors.New("format: malformed record")
	// ErrMalformedBank indicates a child structure overrunning its parent.
	ErrMalformedBank = errors.New("format: malformed bank")
	// ErrUnsupportedVersion indicates a format version other than 6.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrUnsupported indicates the structure or feature is not supported.
	ErrUnsupported = errors.New("format: unsupported feature")
)
