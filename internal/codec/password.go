// Package codec obscures stored credentials with the reversible scheme the
// legacy configuration used: each UTF-16 unit of the secret is XORed with
// the matching unit of a key (usually the account JID) and written as four
// hex digits. It is obfuscation, not encryption.
package codec

import (
	"fmt"
	"strconv"
	"unicode/utf16"
)

// EncodePassword obscures pass using key. An empty key leaves pass as is.
func EncodePassword(pass, key string) string {
	if key == "" {
		return pass
	}
	p := utf16.Encode([]rune(pass))
	k := utf16.Encode([]rune(key))

	out := make([]byte, 0, len(p)*4)
	for i, u := range p {
		out = fmt.Appendf(out, "%04x", u^k[i%len(k)])
	}
	return string(out)
}

// DecodePassword reverses EncodePassword. Decoding stops at the first
// group that is not valid hex.
func DecodePassword(encoded, key string) string {
	if key == "" {
		return encoded
	}
	k := utf16.Encode([]rune(key))

	var units []uint16
	for i, n := 0, 0; i+4 <= len(encoded); i, n = i+4, n+1 {
		x, err := strconv.ParseUint(encoded[i:i+4], 16, 16)
		if err != nil {
			break
		}
		units = append(units, uint16(x)^k[n%len(k)])
	}
	return string(utf16.Decode(units))
}
