package word

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"crane", true},
		{"cran", false},
		{"cranes", false},
		{"cr4ne", false},
		{"CRANE", false},
		{"", false},
	}
	for _, tc := range cases {
		err := Validate(tc.in, DefaultLength)
		if tc.ok && err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("Validate(%q) expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidWord) {
				t.Fatalf("Validate(%q) error %v does not match ErrInvalidWord", tc.in, err)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Flash\n"); got != "flash" {
		t.Fatalf("unexpected normalized word: %q", got)
	}
}
