package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatal("expected distinct ids")
	}

	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("expected a valid uuid, got %q: %v", a, err)
	}
	if id.Version() != 7 {
		t.Errorf("expected version 7, got %d", id.Version())
	}
}
