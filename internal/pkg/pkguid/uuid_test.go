package pkguid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := gen.Generate()

		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("expected valid uuid, got %q", id)
		}
		if parsed.Version() != 7 {
			t.Fatalf("expected version 7, got %d", parsed.Version())
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
