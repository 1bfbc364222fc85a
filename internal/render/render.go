// Package render turns a State snapshot into terminal text or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// Title and Intro head every board.
const (
	Title = "Normalization Practice"
	Intro = "Currently using Nested State. Categories own their tasks directly."
)

// EmptyHint is shown when the board has no categories.
const EmptyHint = "No categories yet."

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	activeCardStyle = cardStyle.BorderForeground(lipgloss.Color("12"))
	cardTitleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	idStyle         = mutedStyle
)

// Options controls board rendering.
type Options struct {
	// ShowIDs appends entity IDs to category titles and tasks.
	ShowIDs bool
	// Width is the card width in columns; zero means size to content.
	Width int
	// ActiveCategory and ActiveTask mark the cursor position, as positions.
	// A negative value marks nothing.
	ActiveCategory int
	ActiveTask     int
	// Footer is rendered inside the active card below its tasks.
	Footer string
}

// DefaultOptions returns Options with no cursor.
func DefaultOptions() Options {
	return Options{ActiveCategory: -1, ActiveTask: -1}
}

// Board renders the heading and one card per category, in display order.
func Board(s types.State, opts Options) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(Intro))
	b.WriteString("\n\n")

	if s.Len() == 0 {
		b.WriteString(mutedStyle.Render(EmptyHint))
		b.WriteString("\n")
		return b.String()
	}

	for i, c := range s.Categories {
		b.WriteString(Card(i, c, opts))
		b.WriteString("\n")
	}
	return b.String()
}

// Card renders one category as a bordered card. pos is the category's
// zero-based position and is shown one-based.
func Card(pos int, c types.Category, opts Options) string {
	active := pos == opts.ActiveCategory

	var lines []string
	heading := fmt.Sprintf("%d. %s", pos+1, c.Name)
	if opts.ShowIDs {
		heading += " " + idStyle.Render("("+c.ID+")")
	}
	lines = append(lines, cardTitleStyle.Render(heading))

	if len(c.Tasks) == 0 {
		lines = append(lines, mutedStyle.Render("no tasks"))
	}
	for j, t := range c.Tasks {
		marker := "  "
		line := fmt.Sprintf("%d) %s", j+1, t.Text)
		if opts.ShowIDs {
			line += " " + idStyle.Render("["+t.ID+"]")
		}
		if active && j == opts.ActiveTask {
			marker = "> "
			line = selectedStyle.Render(line)
		}
		lines = append(lines, marker+line)
	}
	if active && opts.Footer != "" {
		lines = append(lines, "", opts.Footer)
	}

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	if opts.Width > 0 {
		style = style.Width(opts.Width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// JSON writes s as indented JSON followed by a newline.
func JSON(w io.Writer, s types.State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
