// Package codec provides the frame codec: hex string decoding for
// outbound frames and multi-format rendering of received buffers.
// All routines are deterministic and side-effect free.
package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrOddLength reports a hex string whose non-space characters do not
// form complete two-digit byte literals.
var ErrOddLength = errors.New("odd-length hex string")

// DecodeHex decodes a string of two-digit hexadecimal byte literals,
// case-insensitive, with ASCII spaces ignored.
func DecodeHex(s string) ([]byte, error) {
	stripped := strings.ReplaceAll(s, " ", "")
	if len(stripped)%2 != 0 {
		return nil, ErrOddLength
	}

	decoded, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// FormatHex renders buf as uppercase two-digit hex groups separated by
// single spaces.
func FormatHex(buf []byte) string {
	groups := make([]string, len(buf))
	for i, b := range buf {
		groups[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(groups, " ")
}

// FormatBinary renders buf as eight-digit binary groups separated by
// single spaces.
func FormatBinary(buf []byte) string {
	groups := make([]string, len(buf))
	for i, b := range buf {
		groups[i] = fmt.Sprintf("%08b", b)
	}
	return strings.Join(groups, " ")
}

// DecodeUTF8 decodes buf as UTF-8 text. Invalid sequences are replaced
// with U+FFFD instead of failing the whole buffer.
func DecodeUTF8(buf []byte) string {
	if utf8.Valid(buf) {
		return string(buf)
	}
	return strings.ToValidUTF8(string(buf), string(utf8.RuneError))
}

// RxFormats is the set of rendering formats applied to each received
// buffer. Zero to three may be active at once.
type RxFormats struct {
	Hex    bool `json:"hex"`
	Binary bool `json:"binary"`
	UTF8   bool `json:"utf8"`
}

// Count returns the number of active formats.
func (f RxFormats) Count() int {
	n := 0
	if f.Hex {
		n++
	}
	if f.Binary {
		n++
	}
	if f.UTF8 {
		n++
	}
	return n
}

// Render returns one rendered string per active format, in hex,
// binary, UTF-8 order.
func Render(buf []byte, formats RxFormats) []string {
	var rendered []string
	if formats.Hex {
		rendered = append(rendered, FormatHex(buf))
	}
	if formats.Binary {
		rendered = append(rendered, FormatBinary(buf))
	}
	if formats.UTF8 {
		rendered = append(rendered, DecodeUTF8(buf))
	}
	return rendered
}
