package evio

import (
	"errors"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	KindFormat      ErrKind = iota // bad magic, version or truncated header
	KindCorrupt                    // inconsistent lengths inside records or banks
	KindUnsupported                // valid feature we don't decode (e.g. compression)
	KindIndex                      // caller-supplied record or event index out of range
	KindShape                      // bank does not have the requested specialized layout
	KindState                      // file closed
	KindIO                         // opening or mapping the file failed
)

func (k ErrKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindCorrupt:
		return "corrupt"
	case KindUnsupported:
		return "unsupported"
	case KindIndex:
		return "index"
	case KindShape:
		return "shape"
	case KindState:
		return "state"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels. The format-level ones are shared with internal/format so
// errors.Is works across the package boundary.
var (
	ErrInvalidMagic       = format.ErrInvalidMagic
	ErrTruncated          = format.ErrTruncated
	ErrTruncatedHeader    = format.ErrTruncatedHeader
	ErrTruncatedBank      = format.ErrTruncatedBank
	ErrMalformedHeader    = format.ErrMalformedHeader
	ErrMalformedRecord    = format.ErrMalformedRecord
	ErrMalformedBank      = format.ErrMalformedBank
	ErrUnsupportedVersion = format.ErrUnsupportedVersion
	ErrUnsupported        = format.ErrUnsupported
	ErrOutOfBounds        = buf.ErrOutOfBounds

	// ErrIndexOutOfRange indicates a record or event index outside [0, n).
	ErrIndexOutOfRange = errors.New("evio: index out of range")
	// ErrUnexpectedBankShape indicates a bank that does not match the
	// signature of the requested specialized bank.
	ErrUnexpectedBankShape = errors.New("evio: unexpected bank shape")
	// ErrClosed indicates use of a File after Close.
	ErrClosed = errors.New("evio: file is closed")
)

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	kind := KindCorrupt
	switch {
	case errors.Is(err, ErrInvalidMagic),
		errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrTruncatedHeader),
		errors.Is(err, ErrMalformedHeader):
		kind = KindFormat
	case errors.Is(err, ErrUnsupported):
		kind = KindUnsupported
	case errors.Is(err, ErrUnexpectedBankShape):
		kind = KindShape
	case errors.Is(err, ErrIndexOutOfRange):
		kind = KindIndex
	case errors.Is(err, ErrClosed):
		kind = KindState
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}
