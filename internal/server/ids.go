package server

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
)

// IDLength is the encoded length of a client or room identifier: 20 random
// bytes, base32 without padding.
const IDLength = 32

// GenerateID mints one opaque identifier.
func GenerateID() string {
	b := make([]byte, 20)
	rand.Read(b)
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
}

// GenerateUniqueID mints identifiers until one is not already in use.
// Collisions are vanishingly improbable, but the hub holds the authoritative
// tables so checking is cheap.
func GenerateUniqueID(used func(id string) bool) string {
	for {
		id := GenerateID()
		if !used(id) {
			return id
		}
	}
}

// ValidateID rejects identifiers that are not 32 base32 characters.
func ValidateID(id string) error {
	if len(id) != IDLength {
		return errors.New("identifier must be exactly 32 characters")
	}
	for _, ch := range id {
		if (ch < 'A' || ch > 'Z') && (ch < '2' || ch > '7') {
			return errors.New("identifier must contain only base32 characters")
		}
	}
	return nil
}
