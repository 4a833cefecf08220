package dustdb

import (
	"crypto/rand"
	"encoding/hex"
)

// NewUUID returns a freshly generated RFC 4122 version 4 UUID, used as a
// record filename: 16 random bytes with the version nibble of byte 6 forced
// to 0100 and the two high bits of byte 8 forced to 10, rendered as
// lowercase hex in 8-4-4-4-12 groups.
//
// Uniqueness is probabilistic (122 random bits) and is not verified against
// existing files; a collision silently overwrites.
func NewUUID() string {
	var b [16]byte
	rand.Read(b[:])

	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	var out [36]byte
	hex.Encode(out[0:8], b[0:4])
	out[8] = '-'
	hex.Encode(out[9:13], b[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], b[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], b[8:10])
	out[23] = '-'
	hex.Encode(out[24:36], b[10:16])

	return string(out[:])
}
