package candidate

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/verte-zerg/wordler/internal/constraint"
)

// Pool is the subset of a Dictionary still consistent with a session's constraints.
// Filtering only clears members, so a narrowed pool never regains a word.
type Pool struct {
	dict *Dictionary
	live *bitset.BitSet
}

// NewPool returns a pool holding every dictionary word.
func NewPool(d *Dictionary) *Pool {
	live := bitset.New(uint(d.Len()))
	for i := 0; i < d.Len(); i++ {
		live.Set(uint(i))
	}
	return &Pool{dict: d, live: live}
}

// Dictionary returns the backing dictionary.
func (p *Pool) Dictionary() *Dictionary { return p.dict }

// Len returns the number of surviving words.
func (p *Pool) Len() int { return int(p.live.Count()) }

// Contains reports whether w survives.
func (p *Pool) Contains(w string) bool {
	i, ok := p.dict.Index(w)
	return ok && p.live.Test(uint(i))
}

// Words returns the surviving words in dictionary order.
func (p *Pool) Words() []string {
	out := make([]string, 0, p.Len())
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		out = append(out, p.dict.Word(int(i)))
	}
	return out
}

// Filter returns a new pool keeping only the words s allows. p is not modified.
func (p *Pool) Filter(s *constraint.State) *Pool {
	next := p.live.Clone()
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		if !s.Allows(p.dict.Word(int(i))) {
			next.Clear(i)
		}
	}
	return &Pool{dict: p.dict, live: next}
}

// FilterWords keeps the words s allows, preserving input order.
func FilterWords(words []string, s *constraint.State) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if s.Allows(w) {
			out = append(out, w)
		}
	}
	return out
}
