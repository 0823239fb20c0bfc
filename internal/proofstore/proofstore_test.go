package proofstore

import (
	"bytes"
	"strings"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	s := New()

	ref := s.Put("receipt.png", "image/png", []byte{0x89, 0x50})
	if !strings.HasPrefix(ref, "proof_") || len(ref) != len("proof_")+8 {
		t.Fatalf("ref = %q; want proof_ plus 8 chars", ref)
	}

	p, ok := s.Get(ref)
	if !ok {
		t.Fatalf("Get(%q) missed", ref)
	}
	if p.Filename != "receipt.png" || p.ContentType != "image/png" || !bytes.Equal(p.Data, []byte{0x89, 0x50}) {
		t.Fatalf("proof = %+v", p)
	}

	if _, ok := s.Get("proof_NOPE1234"); ok {
		t.Fatal("Get returned a blob for an unknown ref")
	}

	if other := s.Put("a.jpg", "image/jpeg", nil); other == ref {
		t.Fatalf("refs collide: %q", other)
	}
}
