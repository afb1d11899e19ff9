package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.Create("OpenAI")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if conv.ID == "" {
		t.Error("Expected non-empty conversation ID")
	}
	if conv.Provider != "OpenAI" {
		t.Errorf("Provider = %s, want OpenAI", conv.Provider)
	}

	got, err := store.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("Get returned ID %s, want %s", got.ID, conv.ID)
	}
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("no-such-id"); err == nil {
		t.Error("Expected error for missing conversation")
	}
}

func TestAddMessage(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.Create("DeepSeek")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.AddMessage(conv.ID, "user", "hi"); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if err := store.AddMessage(conv.ID, "assistant", "hello!"); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	got, err := store.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "user" || got.Messages[0].Content != "hi" {
		t.Errorf("Unexpected first message: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "assistant" {
		t.Errorf("Unexpected second message: %+v", got.Messages[1])
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("Expected UpdatedAt to be bumped")
	}
}

func TestListOrdersByUpdatedAt(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Create("OpenAI")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := store.Create("DeepSeek")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := store.AddMessage(first.ID, "user", "bump"); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(list))
	}
	// first was updated last, so it comes first
	if list[0].ID != first.ID {
		t.Errorf("list[0].ID = %s, want %s", list[0].ID, first.ID)
	}
	if list[1].ID != second.ID {
		t.Errorf("list[1].ID = %s, want %s", list[1].ID, second.ID)
	}
}

func TestListSkipsCorruptFiles(t *testing.T) {
	baseDir := t.TempDir()
	store, err := NewStore(baseDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.Create("OpenAI"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	corrupt := filepath.Join(baseDir, "history", "bad.json")
	if err := os.WriteFile(corrupt, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 conversation (corrupt file skipped), got %d", len(list))
	}
}

func TestUpdateTitle(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.Create("OpenAI")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateTitle(conv.ID, "Go questions"); err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}

	got, err := store.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Go questions" {
		t.Errorf("Title = %q, want %q", got.Title, "Go questions")
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.Create("OpenAI")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(conv.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(conv.ID); err == nil {
		t.Error("Expected Get to fail after Delete")
	}
	if err := store.Delete(conv.ID); err == nil {
		t.Error("Expected error deleting a missing conversation")
	}
}
