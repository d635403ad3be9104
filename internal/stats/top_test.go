package stats

import (
	"testing"

	"github.com/verte-zerg/wordler/internal/model"
)

func TestTopWordsByFrequency(t *testing.T) {
	aggs := []model.WordAggregate{
		{Word: "slate", Games: 3},
		{Word: "crane", Games: 4},
		{Word: "adieu", Games: 4},
	}
	top := TopWordsByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0].Word != "adieu" || top[1].Word != "crane" {
		t.Fatalf("unexpected order: %v", top)
	}
	if TopWordsByFrequency(aggs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestSelectHardest(t *testing.T) {
	aggs := []model.WordAggregate{
		{Word: "stale", Games: 2, Wins: 2, GuessesTotal: 6},
		{Word: "rower", Games: 2, Wins: 1, GuessesTotal: 10},
		{Word: "tutor", Games: 1, Wins: 1, GuessesTotal: 5},
	}
	hardest := SelectHardest(aggs, 2)
	if len(hardest) != 2 || hardest[0].Word != "rower" || hardest[1].Word != "tutor" {
		t.Fatalf("unexpected hardest: %v", hardest)
	}
	if len(SelectHardest(aggs, 0)) != 3 {
		t.Fatalf("expected all words for top=0")
	}
}
