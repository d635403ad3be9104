package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/store"
)

const defaultHardest = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Games        []model.GameAggregate
	Distribution map[int]int
	Failed       int
	Hardest      []model.WordAggregate
	Openers      []model.WordAggregate
	LastTurns    []model.TurnRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	if len(games) == 0 {
		return Report{}, nil
	}

	ids := gameIDs(games)
	dist := map[int]int{}
	failed := 0
	for _, g := range games {
		if g.Solved() {
			dist[g.Guesses]++
		} else {
			failed++
		}
	}
	solutions, err := st.ListWordAggregatesForGames(ctx, ids, store.BySolution)
	if err != nil {
		return Report{}, err
	}
	starts, err := st.ListWordAggregatesForGames(ctx, ids, store.ByStart)
	if err != nil {
		return Report{}, err
	}
	turns, err := st.ListTurns(ctx, games[len(games)-1].GameID)
	if err != nil {
		return Report{}, err
	}

	hardest := cfg.Hardest
	if hardest <= 0 {
		hardest = defaultHardest
	}
	return Report{
		Games:        games,
		Distribution: dist,
		Failed:       failed,
		Hardest:      SelectHardest(solutions, hardest),
		Openers:      TopWordsByFrequency(starts, hardest),
		LastTurns:    turns,
	}, nil
}

// Render writes every section of the report.
func (r Report) Render(w io.Writer, window int, opts PlotOptions) error {
	if err := RenderSummary(w, r.Games); err != nil {
		return err
	}
	if len(r.Games) == 0 {
		return nil
	}
	if err := RenderDistribution(w, r.Distribution, r.Failed); err != nil {
		return err
	}
	if err := RenderTrend(w, r.Games, window, opts); err != nil {
		return err
	}
	if err := RenderWordTable(w, "Hardest Solutions", r.Hardest); err != nil {
		return err
	}
	if err := RenderWordTable(w, "Openers", r.Openers); err != nil {
		return err
	}
	if len(r.LastTurns) > 0 {
		if _, err := fmt.Fprintln(w, "Last Game"); err != nil {
			return err
		}
		return RenderBoard(w, r.LastTurns, opts.Color)
	}
	return nil
}

func gameIDs(games []model.GameAggregate) []int64 {
	ids := make([]int64, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	return ids
}
