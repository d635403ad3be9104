// Package scorer ranks candidate words by the letter statistics of the pool.
//
// Scores are relative weights, not probabilities: they only order the pool.
package scorer

import (
	"sort"

	"github.com/verte-zerg/wordler/internal/constraint"
	"github.com/verte-zerg/wordler/internal/word"
)

// Stats holds the letter frequency tables of one candidate pool.
type Stats struct {
	Total   [26]int
	Unique  [26]int
	PerSlot [][26]int

	totalSum  int
	uniqueSum int
	slotSums  []int
}

// NewStats counts letters over words, which must all have the given length.
func NewStats(words []string, length int) *Stats {
	st := &Stats{
		PerSlot:  make([][26]int, length),
		slotSums: make([]int, length),
	}
	for _, w := range words {
		var seen [26]bool
		for i := 0; i < length; i++ {
			k := word.Index(w[i])
			st.Total[k]++
			st.PerSlot[i][k]++
			st.slotSums[i]++
			st.totalSum++
			if !seen[k] {
				seen[k] = true
				st.Unique[k]++
				st.uniqueSum++
			}
		}
	}
	return st
}

// Score returns the weight of w under m, skipping positions s has confirmed.
// A nil s skips nothing.
func (st *Stats) Score(w string, s *constraint.State, m Method) float64 {
	switch m {
	case Cumulative:
		return st.product(w, s, func(_ int, k int) float64 { return ratio(st.Total[k], st.totalSum) })
	case Unique:
		return st.product(w, s, func(_ int, k int) float64 { return ratio(st.Unique[k], st.uniqueSum) })
	case PerSlot:
		return st.product(w, s, func(i int, k int) float64 { return ratio(st.PerSlot[i][k], st.slotSums[i]) })
	case Combined:
		return st.Score(w, s, Cumulative) * st.Score(w, s, Unique) * st.Score(w, s, PerSlot)
	default:
		return 0
	}
}

func (st *Stats) product(w string, s *constraint.State, weight func(i, k int) float64) float64 {
	score := 1.0
	for i := 0; i < len(st.PerSlot) && i < len(w); i++ {
		if s != nil {
			if _, ok := s.Confirmed(i); ok {
				continue
			}
		}
		score *= weight(i, word.Index(w[i]))
	}
	return score
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Ranked is a candidate with its score.
type Ranked struct {
	Word  string
	Score float64
}

// Rank scores every word in pool and orders them highest first.
// Ties fall back to alphabetical order.
func Rank(pool []string, s *constraint.State, m Method) []Ranked {
	if len(pool) == 0 {
		return nil
	}
	length := len(pool[0])
	if s != nil {
		length = s.Length()
	}
	st := NewStats(pool, length)
	ranked := make([]Ranked, len(pool))
	for i, w := range pool {
		ranked[i] = Ranked{Word: w, Score: st.Score(w, s, m)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score == ranked[j].Score {
			return ranked[i].Word < ranked[j].Word
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns the first n entries of ranked, or all of them when n <= 0.
func Top(ranked []Ranked, n int) []Ranked {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Best returns the top word under every method.
func Best(pool []string, s *constraint.State) map[Method]string {
	out := make(map[Method]string, 4)
	for _, m := range Methods() {
		ranked := Rank(pool, s, m)
		if len(ranked) > 0 {
			out[m] = ranked[0].Word
		}
	}
	return out
}
