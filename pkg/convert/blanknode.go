package convert

import (
	"encoding/hex"

	"github.com/pchampin/quadbridge/pkg/native"
)

// The 128-bit native blank node id round-trips to a string id through
// two disjoint canonical forms:
//
//   - a 32-hex-digit string, parsed as the big-endian 128-bit value;
//   - an ASCII string of at most 16 bytes, zero-padded into the
//     16-byte buffer.
//
// The forms cannot collide on encoding (one is exactly 32 characters,
// the other at most 16), but decoding must choose: a value whose bytes
// happen to look like a zero-padded ASCII string decodes to that
// string even if it was built from a 32-hex-digit id. Both readings
// denote the same 128-bit value, so the ids stay interchangeable; the
// string forms are not distinguishable. Same for distinct short
// strings sharing a zero-padded byte pattern. Accepted limitation.

// EncodeBlankNodeID maps a generic string identifier to the native
// 128-bit id. The second result is false when the identifier fits
// neither canonical form.
func EncodeBlankNodeID(id string) (native.BlankNodeID, bool) {
	var out native.BlankNodeID
	if len(id) == hex.EncodedLen(len(out)) {
		if _, err := hex.Decode(out[:], []byte(id)); err == nil {
			return out, true
		}
	}
	if len(id) <= len(out) {
		copy(out[:], id)
		return out, true
	}
	return native.BlankNodeID{}, false
}

// DecodeBlankNodeID maps a native 128-bit id back to a string
// identifier, preferring the zero-padded ASCII reading when the bytes
// admit one.
func DecodeBlankNodeID(id native.BlankNodeID) string {
	if s, ok := asciiForm(id); ok {
		return s
	}
	return id.String()
}

// asciiForm reads id as a non-empty run of graphic ASCII followed only
// by zero padding.
func asciiForm(id native.BlankNodeID) (string, bool) {
	end := 0
	for end < len(id) && id[end] != 0 {
		if id[end] < 0x21 || id[end] > 0x7e {
			return "", false
		}
		end++
	}
	if end == 0 {
		return "", false
	}
	for i := end; i < len(id); i++ {
		if id[i] != 0 {
			return "", false
		}
	}
	return string(id[:end]), true
}
