// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/wordler/internal/model"
)

const (
	sparkChars    = " .:-=+*#%@"
	distBarWidth  = 30
	distBarGlyph  = "█"
	failedRowName = "X"
)

// Metrics summarizes a list of games.
type Metrics struct {
	Played        int
	Solved        int
	WinRate       float64
	AvgGuesses    float64
	CurrentStreak int
	BestStreak    int
}

// GameMetrics computes win rate, average guesses of solved games, and streaks.
func GameMetrics(games []model.GameAggregate) Metrics {
	m := Metrics{Played: len(games)}
	total := 0
	streak := 0
	for _, g := range games {
		if !g.Solved() {
			streak = 0
			continue
		}
		m.Solved++
		total += g.Guesses
		streak++
		if streak > m.BestStreak {
			m.BestStreak = streak
		}
	}
	m.CurrentStreak = streak
	if m.Played > 0 {
		m.WinRate = float64(m.Solved) / float64(m.Played)
	}
	if m.Solved > 0 {
		m.AvgGuesses = float64(total) / float64(m.Solved)
	}
	return m
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints played, win rate, average guesses, and streaks.
func RenderSummary(w io.Writer, games []model.GameAggregate) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	m := GameMetrics(games)
	lines := []string{
		"Summary",
		fmt.Sprintf("Played: %d", m.Played),
		fmt.Sprintf("Win rate: %.1f%%", m.WinRate*100),
		fmt.Sprintf("Avg guesses: %.2f", m.AvgGuesses),
		fmt.Sprintf("Streak: %d (best %d)", m.CurrentStreak, m.BestStreak),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDistribution prints a horizontal bar per guess count, plus a row for
// failed games.
func RenderDistribution(w io.Writer, dist map[int]int, failed int) error {
	if len(dist) == 0 && failed == 0 {
		return nil
	}
	keys := make([]int, 0, len(dist))
	peak := failed
	for k, n := range dist {
		keys = append(keys, k)
		if n > peak {
			peak = n
		}
	}
	sort.Ints(keys)

	rows := make([][]string, 0, len(keys)+1)
	bar := func(n int) string {
		size := n * distBarWidth / peak
		if n > 0 && size == 0 {
			size = 1
		}
		return strings.Repeat(distBarGlyph, size)
	}
	for _, k := range keys {
		rows = append(rows, []string{fmt.Sprintf("%d", k), bar(dist[k]), fmt.Sprintf("%d", dist[k])})
	}
	if failed > 0 {
		rows = append(rows, []string{failedRowName, bar(failed), fmt.Sprintf("%d", failed)})
	}
	if _, err := fmt.Fprintln(w, "Guess Distribution"); err != nil {
		return err
	}
	for _, line := range formatTable(nil, rows, map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints a sparkline and a chart of guesses per solved game with
// its moving average.
func RenderTrend(w io.Writer, games []model.GameAggregate, window int, opts PlotOptions) error {
	var guesses []float64
	for _, g := range games {
		if g.Solved() {
			guesses = append(guesses, float64(g.Guesses))
		}
	}
	if len(guesses) < 2 {
		return nil
	}
	avg := MovingAverage(guesses, window)
	if _, err := fmt.Fprintf(w, "Trend [%s]\n", Sparkline(avg)); err != nil {
		return err
	}
	return PlotSeries(w, fmt.Sprintf("Guesses per game (window %d)", window), []Series{
		{Name: "guesses", Values: guesses},
		{Name: "moving avg", Values: avg},
	}, opts)
}

// RenderWordTable prints per-word aggregates as games, win rate, and average.
func RenderWordTable(w io.Writer, title string, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	headers := []string{"Word", "Games", "Win Rate", "Avg Guesses"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, []string{
			agg.Word,
			fmt.Sprintf("%d", agg.Games),
			fmt.Sprintf("%.1f%%", winRate(agg)*100),
			fmt.Sprintf("%.2f", agg.Average()),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
