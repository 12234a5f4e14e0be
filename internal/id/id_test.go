package id_test

import (
	"testing"

	"github.com/factdojo/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	a := id.GenerateID()
	b := id.GenerateID()

	if len(a) != 32 {
		t.Errorf("expected 32 characters, got %d (%q)", len(a), a)
	}
	if a == b {
		t.Error("expected different IDs")
	}
	if !id.Valid(a) {
		t.Errorf("expected %q to be valid", a)
	}
}

func TestValid_Rejects(t *testing.T) {
	for _, s := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		if id.Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
