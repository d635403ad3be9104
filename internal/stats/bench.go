package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/wordler/internal/bench"
)

const maxFailedListed = 8

// RenderBench prints one row per benchmarked start word.
func RenderBench(w io.Writer, summaries []bench.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No benchmark results.")
		return err
	}
	headers := []string{"Start", "Method", "Games", "Average", "Min", "Max", "Failures", "Failed", "Time"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		failed := s.Failed
		more := ""
		if len(failed) > maxFailedListed {
			more = fmt.Sprintf(" +%d", len(failed)-maxFailedListed)
			failed = failed[:maxFailedListed]
		}
		rows = append(rows, []string{
			s.Start,
			s.Method.String(),
			fmt.Sprintf("%d", s.Games),
			fmt.Sprintf("%.3f", s.Average),
			fmt.Sprintf("%d", s.Min),
			fmt.Sprintf("%d", s.Max),
			fmt.Sprintf("%d", s.Failures),
			strings.Join(failed, ",") + more,
			s.Elapsed.Round(time.Millisecond).String(),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 8: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
