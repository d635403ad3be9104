// Package picker draws random words for simulations and benchmark samples.
package picker

import (
	"math/rand"
	"time"
)

// Picker makes seeded random draws.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Word selects one word uniformly. It returns "" for an empty list.
func (p *Picker) Word(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[p.rnd.Intn(len(words))]
}

// Sample selects n distinct words, keeping their input order. When n is not
// smaller than the list, a copy of the whole list is returned.
func (p *Picker) Sample(words []string, n int) []string {
	if n <= 0 || n >= len(words) {
		return append([]string(nil), words...)
	}
	picked := make([]bool, len(words))
	for _, idx := range p.rnd.Perm(len(words))[:n] {
		picked[idx] = true
	}
	result := make([]string, 0, n)
	for i, w := range words {
		if picked[i] {
			result = append(result, w)
		}
	}
	return result
}
