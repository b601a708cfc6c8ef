package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxScores is how many entries the game-over table shows.
const maxScores = 10

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// NewScoreTable builds a high score table. The row belonging to
// sessionID, if present, is selected.
func NewScoreTable(entries []storage.ScoreEntry, sessionID string) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "Pieces", Width: 6},
		{Title: "Date", Width: 12},
	}

	rows := make([]table.Row, len(entries))
	selected := -1
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			truncate(e.Player, columns[1].Width),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Pieces),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
		if sessionID != "" && e.SessionID == sessionID {
			selected = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(len(rows), 1)+1),
		table.WithFocused(selected >= 0),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if selected >= 0 {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetCursor(selected)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)

	return t
}

// RenderScores renders the top scores for non-interactive output.
func RenderScores(store *storage.Store, limit int) (string, error) {
	entries, err := store.TopScores(limit)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return dimStyle.Italic(true).Render("No scores recorded yet."), nil
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("HIGH SCORES"))
	b.WriteString("\n")
	b.WriteString(frameStyle.Render(NewScoreTable(entries, "").View()))
	return b.String(), nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
