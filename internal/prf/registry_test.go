package prf

import (
	"encoding/hex"
	"testing"

	"kdforge/internal/kdf"
)

func TestLookupKnownPRFs(t *testing.T) {
	sizes := map[string]int{
		"hmac-sha1":        20,
		"hmac-sha256":      32,
		"hmac-sha384":      48,
		"hmac-sha512":      64,
		"hmac-sha3-256":    32,
		"hmac-sha3-512":    64,
		"hmac-blake2b-256": 32,
	}

	for name, size := range sizes {
		d, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if d.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, d.Name)
		}
		if d.DigestSize != size {
			t.Errorf("Lookup(%q).DigestSize = %d, want %d", name, d.DigestSize, size)
		}
		if got := d.PRF().DigestSize(); got != size {
			t.Errorf("Lookup(%q).PRF().DigestSize() = %d, want %d", name, got, size)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	if _, err := Lookup("HMAC-SHA256"); err != nil {
		t.Errorf("uppercase lookup failed: %v", err)
	}
}

func TestLookupUnknownPRF(t *testing.T) {
	if _, err := Lookup("hmac-md4"); err == nil {
		t.Error("expected error for unknown PRF")
	}
}

func TestNamesAreSorted(t *testing.T) {
	names := Names()
	if len(names) != 7 {
		t.Fatalf("Names() returned %d entries, want 7", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

// First RFC 6070 vector driven through the registry end to end.
func TestDescriptorDerivesKnownAnswer(t *testing.T) {
	d, err := Lookup("hmac-sha1")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	key, err := kdf.Derive(d.PRF(), []byte("password"), []byte("salt"), 1, 20)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if got := hex.EncodeToString(key); got != "0c60c80f961f0e71f3a9b524af6012062fe037a6" {
		t.Errorf("derived key = %s", got)
	}
}
