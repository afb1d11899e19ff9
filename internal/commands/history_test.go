package commands

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer title", 10, "this is a…"},
		{"héllo wörld", 8, "héllo w…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestOpenHistoryStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := openHistoryStore()
	if err != nil {
		t.Fatalf("openHistoryStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("Expected non-nil store")
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty history, got %d conversations", len(list))
	}
}
