package wordlist

import "github.com/verte-zerg/wordler/internal/word"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLength keeps lowercase a-z words of exactly length letters.
func FilterForLength(length int) FilterFunc {
	return func(w string) bool {
		return word.Valid(w, length)
	}
}

// Apply keeps the words accepted by every filter.
func Apply(words []string, filters ...FilterFunc) []string {
	kept := make([]string, 0, len(words))
outer:
	for _, w := range words {
		for _, f := range filters {
			if !f(w) {
				continue outer
			}
		}
		kept = append(kept, w)
	}
	return kept
}
