package hash

import (
	"bytes"
	"testing"
)

func TestHMACSHA256Deterministic(t *testing.T) {
	h := NewHMACSHA256("secret")

	a, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	b, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Fatal("same input must always hash to the same value")
	}
}

func TestHMACSHA256Verify(t *testing.T) {
	h := NewHMACSHA256("secret")

	hashed, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !h.Verify(string(hashed), "123456") {
		t.Fatal("verify must accept the original input")
	}
	if h.Verify(string(hashed), "654321") {
		t.Fatal("verify must reject a different input")
	}
}

func TestHMACSHA256KeyedBySecret(t *testing.T) {
	a, _ := NewHMACSHA256("secret-a").Hash("123456")
	b, _ := NewHMACSHA256("secret-b").Hash("123456")

	if bytes.Equal(a, b) {
		t.Fatal("different secrets must produce different hashes")
	}
}
