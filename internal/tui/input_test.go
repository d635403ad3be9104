package tui

import (
	"errors"
	"testing"

	"github.com/verte-zerg/wordler/internal/feedback"
)

func TestParseLine(t *testing.T) {
	entry, err := ParseLine("01210", 5)
	if err != nil || entry.Guess != "" || entry.Pattern.String() != "01210" {
		t.Fatalf("unexpected code-only entry %+v (%v)", entry, err)
	}
	entry, err = ParseLine("  Stale 22222 ", 5)
	if err != nil || entry.Guess != "stale" || !entry.Pattern.Won() {
		t.Fatalf("unexpected guess+code entry %+v (%v)", entry, err)
	}
	entry, err = ParseLine("crane", 5)
	if err != nil || entry.Guess != "crane" || entry.Pattern != nil {
		t.Fatalf("unexpected override entry %+v (%v)", entry, err)
	}
	if _, err := ParseLine("0123", 5); !errors.Is(err, feedback.ErrInvalidFeedback) {
		t.Fatalf("expected invalid feedback, got %v", err)
	}
	if _, err := ParseLine("stale 2222x", 5); !errors.Is(err, feedback.ErrInvalidFeedback) {
		t.Fatalf("expected invalid feedback, got %v", err)
	}
	if _, err := ParseLine("a b c", 5); err == nil {
		t.Fatalf("expected error for three fields")
	}
	if _, err := ParseLine("", 5); err == nil {
		t.Fatalf("expected error for empty line")
	}
}
