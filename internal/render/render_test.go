package render

import (
	"strings"
	"sync"
	"testing"
)

func TestMarkdownBasic(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("Expected rendered output to contain the heading, got %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("Expected rendered output to contain the body, got %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("plain text", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth failed: %v", err)
	}
	if out == "" {
		t.Error("Expected non-empty output")
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if _, err := Markdown("", DefaultOptions()); err != nil {
		t.Errorf("Markdown on empty input failed: %v", err)
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().
		WithWidth(120).
		WithStyle("light").
		WithEmoji(false).
		WithPreserveNewLines(false)

	if opts.Width != 120 {
		t.Errorf("Width = %d, want 120", opts.Width)
	}
	if opts.Style != "light" {
		t.Errorf("Style = %s, want light", opts.Style)
	}
	if opts.EnableEmoji || opts.PreserveNewLines {
		t.Error("Expected emoji and newline preservation disabled")
	}

	// Empty style keeps the previous value
	if got := opts.WithStyle("").Style; got != "light" {
		t.Errorf("WithStyle(empty) = %s, want light", got)
	}
}

func TestRendererPooling(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}

	if CacheSize() != 1 {
		t.Errorf("CacheSize = %d, want 1 for repeated options", CacheSize())
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("CacheSize = %d, want 2 after distinct options", CacheSize())
	}

	ClearCache()
	if CacheSize() != 0 {
		t.Errorf("CacheSize = %d after ClearCache, want 0", CacheSize())
	}
}

func TestMarkdownConcurrent(t *testing.T) {
	ClearCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("**concurrent** render", DefaultOptions()); err != nil {
				t.Errorf("Markdown failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
