package stats

import (
	"sort"

	"github.com/verte-zerg/wordler/internal/model"
)

// TopWordsByFrequency returns the n most played words.
func TopWordsByFrequency(aggs []model.WordAggregate, n int) []model.WordAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.WordAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Games == items[j].Games {
			return items[i].Word < items[j].Word
		}
		return items[i].Games > items[j].Games
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
