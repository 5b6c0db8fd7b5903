// Package render draws model responses to the terminal: incremental
// plain text, live-updating markdown frames, and the waiting spinner.
package render

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is used when terminal width detection fails.
const DefaultWidth = 80

// Markdown wraps glamour for rendering markdown to styled terminal
// output.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a markdown renderer with the specified word-wrap
// width.
func NewMarkdown(width int) (*Markdown, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	// A fixed style avoids terminal background detection, which can
	// swallow bytes typed while a response is streaming.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &Markdown{renderer: renderer, width: width}, nil
}

// Render renders markdown content to styled terminal output.
func (m *Markdown) Render(content string) (string, error) {
	return m.renderer.Render(content)
}

// Width returns the renderer's word-wrap width.
func (m *Markdown) Width() int {
	return m.width
}

// TerminalWidth returns the width of the terminal behind w, or
// DefaultWidth when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
