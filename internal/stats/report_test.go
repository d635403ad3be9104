package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "wordler.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	plays := []struct {
		solution string
		guesses  int
		won      bool
	}{
		{"tutor", 5, true},
		{"stale", 3, true},
		{"rower", 7, true},
		{"stale", 4, true},
	}
	var ids []int64
	for i, p := range plays {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		turns := []model.TurnRecord{{Guess: "flash", Pattern: "01210", Remaining: 2}}
		turns = append(turns, model.TurnRecord{Guess: p.solution, Pattern: "22222", Remaining: 1})
		id, err := st.InsertGame(ctx, model.GameRecord{
			StartedAt:  start,
			EndedAt:    start.Add(5 * time.Second),
			Mode:       model.ModeSimulate,
			Method:     "cumulative",
			Start:      "flash",
			Solution:   p.solution,
			Guesses:    p.guesses,
			MaxGuesses: 6,
			Won:        p.won,
			Turns:      turns,
		})
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 3})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(report.Games))
	}
	if report.Games[0].GameID != ids[1] || report.Games[2].GameID != ids[3] {
		t.Fatalf("unexpected game ids: %+v", report.Games)
	}
	if report.Failed != 1 || report.Distribution[3] != 1 || report.Distribution[4] != 1 {
		t.Fatalf("unexpected distribution %v failed=%d", report.Distribution, report.Failed)
	}
	if len(report.Hardest) == 0 || report.Hardest[0].Word != "rower" {
		t.Fatalf("expected rower hardest, got %v", report.Hardest)
	}
	if len(report.Openers) != 1 || report.Openers[0].Word != "flash" || report.Openers[0].Games != 3 {
		t.Fatalf("unexpected openers %v", report.Openers)
	}
	if len(report.LastTurns) != 2 || report.LastTurns[1].Guess != "stale" {
		t.Fatalf("unexpected last turns %v", report.LastTurns)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, PlotOptions{Width: 20, Height: 3}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Played: 3", "Guess Distribution", "Hardest Solutions", "Openers", "Last Game", "STALE"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestBuildReportEmpty(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wordler.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, 5, PlotOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No games found." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
