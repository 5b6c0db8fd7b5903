package repl

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// MultiLineSentinel opens and closes a multi-line message.
const MultiLineSentinel = `"""`

// ErrInputAborted is returned when the user interrupts the prompt
// (Ctrl-C at the input line). The loop swallows it and re-prompts.
var ErrInputAborted = errors.New("input aborted")

// LineReader acquires one physical line of input. Implementations
// return io.EOF when input is exhausted and ErrInputAborted when the
// user interrupts the prompt.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// TerminalReader is the liner-backed LineReader used for interactive
// sessions: emacs-style editing, input history, Ctrl-C abort.
type TerminalReader struct {
	s *liner.State
}

// NewTerminalReader initializes the terminal for line editing. Close
// must be called to restore the terminal mode.
func NewTerminalReader() *TerminalReader {
	s := liner.NewLiner()
	s.SetCtrlCAborts(true)
	return &TerminalReader{s: s}
}

func (r *TerminalReader) Prompt(prompt string) (string, error) {
	line, err := r.s.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInputAborted
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	return line, nil
}

func (r *TerminalReader) AppendHistory(item string) {
	r.s.AppendHistory(item)
}

// Close restores the terminal state.
func (r *TerminalReader) Close() error {
	return r.s.Close()
}
