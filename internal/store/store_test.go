package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordler/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "wordler.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func game(i int, method, solution string, guesses int, won bool) model.GameRecord {
	start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
	turns := make([]model.TurnRecord, guesses)
	for j := range turns {
		turns[j] = model.TurnRecord{Guess: "crane", Pattern: "00000", Remaining: 10 - j}
	}
	if won {
		turns[guesses-1] = model.TurnRecord{Guess: solution, Pattern: "22222", Remaining: 1}
	}
	return model.GameRecord{
		StartedAt:  start,
		EndedAt:    start.Add(10 * time.Second),
		Mode:       model.ModeSimulate,
		Method:     method,
		Start:      "crane",
		Solution:   solution,
		Guesses:    guesses,
		MaxGuesses: 6,
		Won:        won,
		WordCount:  100,
		Turns:      turns,
	}
}

func TestInsertAndListGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	records := []model.GameRecord{
		game(0, "cumulative", "stale", 3, true),
		game(1, "unique", "stale", 4, true),
		game(2, "cumulative", "rower", 6, false),
	}
	var ids []int64
	for _, rec := range records {
		id, err := st.InsertGame(ctx, rec)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListGames(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 games, got %d", len(all))
	}
	if all[0].GameID != ids[0] || !all[0].Won || all[0].Guesses != 3 || all[0].Solution != "stale" {
		t.Fatalf("unexpected first game: %+v", all[0])
	}
	if all[2].Won || all[2].Solved() {
		t.Fatalf("expected last game lost: %+v", all[2])
	}

	cum, err := st.ListGames(ctx, model.StatsConfig{Method: "cumulative"})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(cum) != 2 {
		t.Fatalf("expected 2 cumulative games, got %d", len(cum))
	}

	since := time.Unix(0, 0).UTC().Add(time.Minute)
	recent, err := st.ListGames(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != ids[1] {
		t.Fatalf("expected games after %s, got %+v", since, recent)
	}

	turns, err := st.ListTurns(ctx, ids[1])
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 4 || turns[3].Pattern != "22222" || turns[3].Guess != "stale" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestGuessDistribution(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i, rec := range []model.GameRecord{
		game(0, "cumulative", "stale", 3, true),
		game(1, "cumulative", "flash", 3, true),
		game(2, "cumulative", "tutor", 5, true),
		game(3, "cumulative", "rower", 6, false),
	} {
		if _, err := st.InsertGame(ctx, rec); err != nil {
			t.Fatalf("insert game %d: %v", i, err)
		}
	}
	dist, err := st.GuessDistribution(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if dist[3] != 2 || dist[5] != 1 || dist[6] != 0 {
		t.Fatalf("unexpected distribution: %v", dist)
	}
}

func TestListWordAggregatesForGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	var ids []int64
	for _, rec := range []model.GameRecord{
		game(0, "cumulative", "stale", 3, true),
		game(1, "cumulative", "stale", 5, true),
		game(2, "cumulative", "rower", 6, false),
	} {
		id, err := st.InsertGame(ctx, rec)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}
	aggs, err := st.ListWordAggregatesForGames(ctx, ids, BySolution)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	byWord := map[string]model.WordAggregate{}
	for _, agg := range aggs {
		byWord[agg.Word] = agg
	}
	stale := byWord["stale"]
	if stale.Games != 2 || stale.Wins != 2 || stale.Average() != 4 {
		t.Fatalf("unexpected stale aggregate: %+v", stale)
	}
	if rower := byWord["rower"]; rower.Wins != 0 || rower.Games != 1 {
		t.Fatalf("unexpected rower aggregate: %+v", rower)
	}
	if _, err := st.ListWordAggregatesForGames(ctx, ids, "guess; DROP TABLE games"); err == nil {
		t.Fatalf("expected unknown column error")
	}
	empty, err := st.ListWordAggregatesForGames(ctx, nil, ByStart)
	if err != nil || empty != nil {
		t.Fatalf("expected nil for no games, got %v (%v)", empty, err)
	}
}
