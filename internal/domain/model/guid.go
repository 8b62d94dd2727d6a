package model

import "github.com/google/uuid"

// guidChars is the 64-character alphabet of the IFC GlobalId encoding.
const guidChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// NewGlobalID generates a fresh 22-character IFC global identifier from a
// random UUID.
func NewGlobalID() string {
	return CompressUUID(uuid.New())
}

// CompressUUID encodes a 128-bit UUID as 22 characters: the first byte as
// two characters, then each 3-byte group as four.
func CompressUUID(u uuid.UUID) string {
	out := make([]byte, 0, 22)
	out = appendBase64(out, uint32(u[0]), 2)
	for i := 1; i < 16; i += 3 {
		v := uint32(u[i])<<16 | uint32(u[i+1])<<8 | uint32(u[i+2])
		out = appendBase64(out, v, 4)
	}
	return string(out)
}

func appendBase64(dst []byte, v uint32, width int) []byte {
	chars := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		chars[i] = guidChars[v&0x3f]
		v >>= 6
	}
	return append(dst, chars...)
}

// ValidGlobalID reports whether s is a well-formed 22-character identifier.
func ValidGlobalID(s string) bool {
	if len(s) != 22 {
		return false
	}
	for i := 0; i < len(s); i++ {
		ok := false
		for j := 0; j < len(guidChars); j++ {
			if s[i] == guidChars[j] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	// The leading character encodes only 8 bits spread over two slots, so
	// it can never exceed '3'.
	return s[0] >= '0' && s[0] <= '3'
}
