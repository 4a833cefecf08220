package protocol

import (
	"encoding/hex"
	"unicode/utf8"
)

// Encode maps each byte of the UTF-8 encoding of text to two lowercase hex
// digits. Output length is always twice the input byte length.
func Encode(text string) string {
	return hex.EncodeToString([]byte(text))
}

// Decode is the inverse of Encode: it consumes the input two characters at a
// time, parses each pair as a base-16 byte and reassembles the byte sequence
// as a UTF-8 string.
//
// Returns a *DecodeError when the input length is odd, a pair is not valid
// hex, or the decoded bytes are not valid UTF-8. The UTF-8 check is strict:
// invalid sequences are rejected rather than replaced, so round-tripping
// through Encode is lossless.
func Decode(h string) (string, error) {
	if len(h)%2 != 0 {
		return "", &DecodeError{Message: "odd-length hex input"}
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return "", &DecodeError{Message: "invalid hex input", Err: err}
	}

	if !utf8.Valid(b) {
		return "", &DecodeError{Message: "decoded payload is not valid UTF-8"}
	}

	return string(b), nil
}
