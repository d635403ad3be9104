// Package candidate narrows a dictionary to the words consistent with known constraints.
package candidate

import (
	"sort"

	"github.com/verte-zerg/wordler/internal/word"
)

// Dictionary is an immutable, sorted, deduplicated word set of one length.
// It is safe to share between concurrent sessions.
type Dictionary struct {
	length int
	words  []string
	index  map[string]int
}

// NewDictionary normalizes words, drops invalid or duplicate tokens and sorts the rest.
func NewDictionary(words []string, length int) *Dictionary {
	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = word.Normalize(w)
		if !word.Valid(w, length) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	sort.Strings(kept)
	index := make(map[string]int, len(kept))
	for i, w := range kept {
		index[w] = i
	}
	return &Dictionary{length: length, words: kept, index: index}
}

// Length returns the word length.
func (d *Dictionary) Length() int { return d.length }

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Word returns the i-th word in sorted order.
func (d *Dictionary) Word(i int) string { return d.words[i] }

// Words returns a copy of the word list.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.index[w]
	return ok
}

// Index returns the position of w.
func (d *Dictionary) Index(w string) (int, bool) {
	i, ok := d.index[w]
	return i, ok
}
