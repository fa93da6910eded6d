// Package oid generates and validates the 24-character hexadecimal
// identities used for patients, clinical records, and staff accounts.
package oid

import (
	"crypto/rand"
	"encoding/hex"
)

// Len is the length of an identity string.
const Len = 24

// New returns a fresh identity: 12 random bytes, hex-encoded.
func New() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("oid: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// IsValid reports whether s has the shape of an identity: exactly 24
// hex characters. Callers check this before querying storage so that a
// malformed id never reaches the database.
func IsValid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
