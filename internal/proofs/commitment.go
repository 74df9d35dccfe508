// internal/proofs/commitment.go
package proofs

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

const openingSize = 32

// Commit produces a hiding SHA-256 commitment to data and the random
// opening needed to reveal it.
func Commit(data []byte) ([]byte, []byte, error) {
	opening := make([]byte, openingSize)
	if _, err := rand.Read(opening); err != nil {
		return nil, nil, fmt.Errorf("error generating opening: %w", err)
	}

	h := sha256.New()
	h.Write(opening)
	h.Write(data)
	return h.Sum(nil), opening, nil
}

// Open reports whether commitment opens to data under opening.
func Open(commitment, opening, data []byte) bool {
	h := sha256.New()
	h.Write(opening)
	h.Write(data)
	return hmac.Equal(commitment, h.Sum(nil))
}
