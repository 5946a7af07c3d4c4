package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGeneratorProducesVersion7(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}

	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7, got %d", parsed.Version())
	}
}
