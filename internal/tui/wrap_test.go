package tui

import "testing"

func TestWrapItems(t *testing.T) {
	items := []string{"crane", "slate", "adieu", "stale"}
	if got := wrapItems(items, "  ", 0); got != "crane  slate  adieu  stale" {
		t.Fatalf("unexpected unwrapped output %q", got)
	}
	if got := wrapItems(items, "  ", 12); got != "crane  slate\nadieu  stale" {
		t.Fatalf("unexpected wrap %q", got)
	}
	if got := wrapItems(items, " ", 3); got != "crane\nslate\nadieu\nstale" {
		t.Fatalf("expected one item per line when too narrow, got %q", got)
	}
	if got := wrapItems(nil, " ", 10); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
