package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/model"
)

var tileColors = map[feedback.Symbol]string{
	feedback.Correct: "\x1b[30;42m",
	feedback.Present: "\x1b[30;43m",
	feedback.Absent:  "\x1b[97;100m",
}

// Tiles renders a guess as coloured letter tiles, or as the uppercase guess
// followed by its share squares when color is false.
func Tiles(guess string, p feedback.Pattern, color bool) string {
	if !color {
		return strings.ToUpper(guess) + " " + p.Squares()
	}
	var b strings.Builder
	for i := 0; i < len(guess) && i < len(p); i++ {
		b.WriteString(tileColors[p[i]])
		b.WriteByte(' ')
		b.WriteByte(guess[i] - 'a' + 'A')
		b.WriteByte(' ')
		b.WriteString(colorReset)
	}
	return b.String()
}

// RenderBoard prints one tile row per turn with the remaining candidate count.
func RenderBoard(w io.Writer, turns []model.TurnRecord, forceColor bool) error {
	useColor := shouldUseColor(w, forceColor)
	for _, turn := range turns {
		p, err := feedback.Parse(turn.Pattern, len(turn.Guess))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %d left\n", Tiles(turn.Guess, p, useColor), p, turn.Remaining); err != nil {
			return err
		}
	}
	return nil
}
