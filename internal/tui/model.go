// Package tui provides the Bubble Tea solving assistant.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/session"
	statsPkg "github.com/verte-zerg/wordler/internal/stats"
	"github.com/verte-zerg/wordler/internal/store"
)

// Factory starts a fresh session for each game.
type Factory func() (*session.Session, error)

// Options configures the assistant.
type Options struct {
	NewSession  Factory
	Store       *store.Store
	Logger      zerolog.Logger
	Suggestions int
}

// Model implements the Bubble Tea assistant UI.
type Model struct {
	opts      Options
	session   *session.Session
	startedAt time.Time
	saved     bool

	input   textinput.Model
	message string
	failure string

	width  int
	height int

	played int
	solved int
}

var (
	correctTile  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#538D4E")).Padding(0, 1)
	presentTile  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B59F3B")).Padding(0, 1)
	absentTile   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3A3C")).Padding(0, 1)
	pendingTile  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Border(lipgloss.NormalBorder(), false, false, true, false).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the assistant and starts the first game.
func NewModel(opts Options) (*Model, error) {
	if opts.NewSession == nil {
		return nil, fmt.Errorf("session factory is required")
	}
	if opts.Suggestions <= 0 {
		opts.Suggestions = 5
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "feedback code, or guess and code"
	input.CharLimit = 32
	input.Focus()

	m := &Model{opts: opts, input: input}
	if err := m.newGame(); err != nil {
		return nil, err
	}
	m.loadFooterStats()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.saveGame()
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.saveGame()
			if err := m.newGame(); err != nil {
				m.failure = err.Error()
			}
			return m, nil
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			m.handleLine(line)
			return m, nil
		case tea.KeyRunes:
			if m.input.Value() == "" && string(msg.Runes) == "q" {
				m.saveGame()
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("wordler"))
	b.WriteString("\n\n")
	for _, turn := range m.session.History() {
		b.WriteString(renderTiles(turn.Guess, turn.Pattern))
		b.WriteString(footerStyle.Render(fmt.Sprintf("  %d left", turn.Remaining)))
		b.WriteByte('\n')
	}
	if next := m.session.Proposal(); next != "" {
		b.WriteString(renderPending(next))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if sug := m.suggestions(); sug != "" {
		b.WriteString(sug)
		b.WriteString("\n\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteByte('\n')
	}
	if m.failure != "" {
		b.WriteString(errorStyle.Render(m.failure))
		b.WriteByte('\n')
	}
	if !m.session.Done() {
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}
	b.WriteString(m.renderFooter())
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) handleLine(line string) {
	m.failure = ""
	if m.session.Done() {
		m.saveGame()
		if err := m.newGame(); err != nil {
			m.failure = err.Error()
		}
		return
	}
	entry, err := ParseLine(line, m.session.Constraints().Length())
	if err != nil {
		m.failure = err.Error()
		return
	}
	if entry.Pattern == nil {
		if err := m.session.Propose(entry.Guess); err != nil {
			m.failure = err.Error()
			return
		}
		m.message = fmt.Sprintf("Next guess set to %s.", strings.ToUpper(entry.Guess))
		return
	}
	res, err := m.session.Submit(entry.Guess, session.Observed(entry.Pattern))
	if err != nil {
		m.failure = err.Error()
		if errors.Is(err, session.ErrNoCandidates) {
			m.message = "No word fits that feedback. Press Enter for a new game."
			m.saveGame()
		}
		return
	}
	m.opts.Logger.Debug().Str("guess", res.Guess).Str("feedback", res.Pattern.String()).Int("remaining", res.CandidateCount).Msg("assistant turn")
	switch res.State {
	case session.Won:
		m.message = fmt.Sprintf("Solved in %d. Press Enter for a new game.", m.session.GuessCount())
		m.saveGame()
	case session.OutOfGuesses:
		m.message = fmt.Sprintf("Out of guesses; %d candidates left. Keep going or Ctrl+N for a new game.", res.CandidateCount)
	default:
		m.message = fmt.Sprintf("%d candidates left.", res.CandidateCount)
	}
}

func (m *Model) newGame() error {
	s, err := m.opts.NewSession()
	if err != nil {
		return err
	}
	m.session = s
	m.startedAt = time.Now()
	m.saved = false
	m.message = fmt.Sprintf("Play %s and enter the feedback code (0 absent, 1 present, 2 correct).", strings.ToUpper(s.Proposal()))
	return nil
}

func (m *Model) saveGame() {
	if m.saved || m.session.GuessCount() == 0 {
		return
	}
	m.saved = true
	rec := m.session.Record(model.ModeAssist, "", "", m.startedAt, time.Now())
	m.played++
	if rec.Won && rec.Guesses <= rec.MaxGuesses {
		m.solved++
	}
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.InsertGame(context.Background(), rec); err != nil {
		m.opts.Logger.Error().Err(err).Msg("failed to save game")
	}
}

func (m *Model) loadFooterStats() {
	if m.opts.Store == nil {
		return
	}
	games, err := m.opts.Store.ListGames(context.Background(), model.StatsConfig{Mode: model.ModeAssist})
	if err != nil {
		m.opts.Logger.Error().Err(err).Msg("failed to load game stats")
		return
	}
	metrics := statsPkg.GameMetrics(games)
	m.played = metrics.Played
	m.solved = metrics.Solved
}

func (m *Model) suggestions() string {
	if m.session.Done() {
		return ""
	}
	top := scorer.Top(m.session.Ranked(), m.opts.Suggestions)
	if len(top) <= 1 {
		return ""
	}
	items := make([]string, len(top))
	for i, r := range top {
		items[i] = r.Word
	}
	width := 0
	if m.width > 0 {
		width = m.width * 7 / 10
	}
	return footerStyle.Render("Also: ") + wrapItems(items, "  ", width)
}

func (m *Model) renderFooter() string {
	cfg := m.session.Config()
	segments := []string{
		fmt.Sprintf("Guess %d/%d", m.session.GuessCount(), cfg.MaxGuesses),
		fmt.Sprintf("%d candidates", m.session.CandidateCount()),
		cfg.Method.String(),
	}
	if m.played > 0 {
		segments = append(segments, fmt.Sprintf("Played %d · Won %.1f%%", m.played, float64(m.solved)/float64(m.played)*100))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func renderTiles(guess string, p feedback.Pattern) string {
	var b strings.Builder
	for i := 0; i < len(guess) && i < len(p); i++ {
		letter := strings.ToUpper(guess[i : i+1])
		switch p[i] {
		case feedback.Correct:
			b.WriteString(correctTile.Render(letter))
		case feedback.Present:
			b.WriteString(presentTile.Render(letter))
		default:
			b.WriteString(absentTile.Render(letter))
		}
	}
	return b.String()
}

func renderPending(guess string) string {
	tiles := make([]string, len(guess))
	for i := range guess {
		tiles[i] = pendingTile.Render(strings.ToUpper(guess[i : i+1]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
