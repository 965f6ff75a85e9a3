package kdf

import (
	"crypto/hmac"
	"fmt"
	"hash"
)

// PRF describes a keyed pseudorandom function family. The engine treats
// it purely as an injected capability: it reads the digest length and
// asks for keyed instances, nothing else.
type PRF interface {
	// DigestSize returns the PRF output length in bytes.
	DigestSize() int

	// Keyed returns a digest instance keyed with key. The instance
	// follows the hash.Hash contract: Reset discards buffered input
	// but keeps the key, so one instance serves every PRF invocation
	// within a single derivation.
	Keyed(key []byte) (hash.Hash, error)
}

// HMAC adapts a plain hash constructor into a PRF using crypto/hmac.
type HMAC struct {
	New func() hash.Hash
}

// DigestSize returns the output size of the underlying hash.
func (m HMAC) DigestSize() int {
	if m.New == nil {
		return 0
	}
	return m.New().Size()
}

// Keyed returns an HMAC instance keyed with key.
func (m HMAC) Keyed(key []byte) (hash.Hash, error) {
	if m.New == nil {
		return nil, fmt.Errorf("%w: missing hash constructor", ErrInvalidPRF)
	}
	return hmac.New(m.New, key), nil
}
