// Package prf maintains the registry of keyed PRFs the derivation
// engine can be driven with. Availability is a runtime lookup, not a
// build-time toggle: every PRF compiled into the binary is listed.
package prf

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"kdforge/internal/kdf"
)

// Descriptor identifies a supported keyed PRF and exposes its digest
// length without instantiating the engine-facing adapter.
type Descriptor struct {
	Name       string
	DigestSize int
	newHash    func() hash.Hash
}

// PRF returns the engine-facing HMAC adapter for this descriptor.
func (d Descriptor) PRF() kdf.PRF {
	return kdf.HMAC{New: d.newHash}
}

var registry = make(map[string]Descriptor)

func register(name string, newHash func() hash.Hash) {
	registry[name] = Descriptor{
		Name:       name,
		DigestSize: newHash().Size(),
		newHash:    newHash,
	}
}

func init() {
	register("hmac-sha1", sha1.New)
	register("hmac-sha256", sha256.New)
	register("hmac-sha384", sha512.New384)
	register("hmac-sha512", sha512.New)
	register("hmac-sha3-256", sha3.New256)
	register("hmac-sha3-512", sha3.New512)
	register("hmac-blake2b-256", func() hash.Hash {
		// Unkeyed blake2b cannot fail.
		h, _ := blake2b.New256(nil)
		return h
	})
}

// Lookup resolves a PRF name to its descriptor.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return Descriptor{}, fmt.Errorf("unsupported PRF %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the sorted list of registered PRF names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
