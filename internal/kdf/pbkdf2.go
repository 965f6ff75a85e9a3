// Package kdf implements the PBKDF2 key derivation function (RFC 8018
// section 5.2) over a caller-supplied keyed PRF.
package kdf

import (
	"encoding/binary"
	"fmt"
	"hash"
	"sync"
)

// MaxBlockLen is the largest supported PRF digest length in bytes,
// sized to cover SHA-512-class outputs. PRFs with longer digests are
// rejected rather than truncated.
const MaxBlockLen = 80

// maxBlockIndex is the largest block index the RFC 8018 counter can
// encode, which bounds the derived key to (2^32 - 1) * hLen octets.
const maxBlockIndex = 1<<32 - 1

// params holds the derived constants of one validated request.
type params struct {
	hLen   int // PRF digest length
	blocks int // l, number of output blocks
	rem    int // r, octets taken from the final block
}

// validate checks a derivation request and computes its block layout.
// The key length bound is checked in uint64 arithmetic before any
// division so pathological requests cannot overflow.
func validate(prf PRF, iterations, keyLen int) (params, error) {
	if prf == nil {
		return params{}, fmt.Errorf("%w: nil PRF", ErrInvalidPRF)
	}
	hLen := prf.DigestSize()
	if hLen <= 0 || hLen > MaxBlockLen {
		return params{}, fmt.Errorf("%w: digest length %d not in 1..%d", ErrInvalidPRF, hLen, MaxBlockLen)
	}
	if iterations < 1 {
		return params{}, fmt.Errorf("%w: %d", ErrInvalidIterationCount, iterations)
	}
	if keyLen < 1 {
		return params{}, fmt.Errorf("%w: %d", ErrInvalidDerivedKeyLength, keyLen)
	}
	if uint64(keyLen) > maxBlockIndex*uint64(hLen) {
		return params{}, fmt.Errorf("%w: %d octets exceeds (2^32-1)*%d", ErrDerivedKeyTooLong, keyLen, hLen)
	}

	blocks := keyLen / hLen
	if keyLen%hLen != 0 {
		blocks++
	}
	return params{
		hLen:   hLen,
		blocks: blocks,
		rem:    keyLen - (blocks-1)*hLen,
	}, nil
}

// generateBlock computes one output block T_i into dst (len(dst) == hLen):
//
//	U_1 = PRF(password, salt || BE32(index))
//	U_u = PRF(password, U_{u-1})
//	T_i = U_1 xor U_2 xor ... xor U_c
//
// h must already be keyed with the password. Only the running XOR and
// the current U are kept live, so memory stays at two hLen buffers no
// matter how large iterations is.
func generateBlock(h hash.Hash, salt []byte, index uint32, iterations int, dst []byte) error {
	var ubuf [MaxBlockLen]byte
	u := ubuf[:0]
	defer Wipe(ubuf[:len(dst)])

	msg := make([]byte, len(salt)+4)
	copy(msg, salt)
	binary.BigEndian.PutUint32(msg[len(salt):], index)

	h.Reset()
	_, err := h.Write(msg)
	Wipe(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPRF, err)
	}
	u = h.Sum(u)
	copy(dst, u)

	for n := 2; n <= iterations; n++ {
		h.Reset()
		if _, err := h.Write(u); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPRF, err)
		}
		u = h.Sum(u[:0])
		for k := range dst {
			dst[k] ^= u[k]
		}
	}
	return nil
}

// Derive stretches password and salt into a keyLen-byte key using
// PBKDF2 with the given PRF and iteration count. The result is
// deterministic for fixed inputs and exactly keyLen bytes long. All
// intermediate secret buffers are zeroed before return on every path;
// on error no partial key is exposed.
func Derive(prf PRF, password, salt []byte, iterations, keyLen int) ([]byte, error) {
	p, err := validate(prf, iterations, keyLen)
	if err != nil {
		return nil, err
	}

	h, err := prf.Keyed(password)
	if err != nil {
		return nil, fmt.Errorf("%w: keying failed: %v", ErrInvalidPRF, err)
	}

	dk := make([]byte, keyLen)
	var tbuf [MaxBlockLen]byte
	t := tbuf[:p.hLen]
	defer Wipe(t)

	for i := 1; i <= p.blocks; i++ {
		if err := generateBlock(h, salt, uint32(i), iterations, t); err != nil {
			Wipe(dk)
			return nil, err
		}
		n := p.hLen
		if i == p.blocks {
			n = p.rem
		}
		copy(dk[(i-1)*p.hLen:], t[:n])
	}
	return dk, nil
}

// DeriveParallel is Derive with the block computations fanned out over
// a pool of worker goroutines. Blocks share only the read-only password
// and salt, so each worker runs its own keyed PRF instance and writes
// its blocks at the offsets the block index dictates; the output is
// byte-identical to Derive. workers <= 1 falls back to the sequential
// path.
func DeriveParallel(prf PRF, password, salt []byte, iterations, keyLen, workers int) ([]byte, error) {
	p, err := validate(prf, iterations, keyLen)
	if err != nil {
		return nil, err
	}
	if workers > p.blocks {
		workers = p.blocks
	}
	if workers <= 1 {
		return Derive(prf, password, salt, iterations, keyLen)
	}

	dk := make([]byte, keyLen)
	indices := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			h, err := prf.Keyed(password)
			if err != nil {
				fail(fmt.Errorf("%w: keying failed: %v", ErrInvalidPRF, err))
				for range indices {
					// drain so the producer never blocks
				}
				return
			}

			var tbuf [MaxBlockLen]byte
			t := tbuf[:p.hLen]
			defer Wipe(t)

			for i := range indices {
				if failed() {
					continue
				}
				if err := generateBlock(h, salt, uint32(i), iterations, t); err != nil {
					fail(err)
					continue
				}
				n := p.hLen
				if i == p.blocks {
					n = p.rem
				}
				copy(dk[(i-1)*p.hLen:], t[:n])
			}
		}()
	}

	for i := 1; i <= p.blocks; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		Wipe(dk)
		return nil, firstErr
	}
	return dk, nil
}

// Wipe zeroes secret-bearing bytes. The engine wipes every intermediate
// buffer it allocates; callers can use it on material they own.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
