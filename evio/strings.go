package evio

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

const stringPadByte = 0x04

// Strings decodes a char8 string bank (type 0x03). EVIO packs strings as
// NUL-terminated byte runs followed by 0x04 padding up to the word boundary.
// Bytes are ISO-8859-1 and returned as UTF-8.
func (b *Bank) Strings() ([]string, error) {
	if b.Type != TypeCharStar8 {
		return nil, &Error{
			Kind: KindShape,
			Msg:  fmt.Sprintf("bank type %s is not a string bank", b.Type),
			Err:  ErrUnexpectedBankShape,
		}
	}
	data := b.Payload
	if i := bytes.IndexByte(data, stringPadByte); i >= 0 {
		data = data[:i]
	}

	dec := charmap.ISO8859_1.NewDecoder()
	var out []string
	for len(data) > 0 {
		i := bytes.IndexByte(data, 0)
		if i < 0 {
			// Unterminated trailing run is the last string.
			i = len(data)
		}
		s, err := dec.Bytes(data[:i])
		if err != nil {
			return nil, &Error{Kind: KindCorrupt, Msg: "decode string bank", Err: err}
		}
		out = append(out, string(s))
		if i == len(data) {
			break
		}
		data = data[i+1:]
	}
	return out, nil
}
