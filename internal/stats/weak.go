package stats

import (
	"sort"

	"github.com/verte-zerg/wordler/internal/model"
)

// SelectHardest returns the solutions with the lowest win rate, breaking ties
// by highest average guesses.
func SelectHardest(aggs []model.WordAggregate, top int) []model.WordAggregate {
	candidates := make([]model.WordAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := winRate(candidates[i]), winRate(candidates[j])
		if ri != rj {
			return ri < rj
		}
		ai, aj := candidates[i].Average(), candidates[j].Average()
		if ai != aj {
			return ai > aj
		}
		return candidates[i].Word < candidates[j].Word
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}

func winRate(agg model.WordAggregate) float64 {
	if agg.Games == 0 {
		return 1.0
	}
	return float64(agg.Wins) / float64(agg.Games)
}
