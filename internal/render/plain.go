package render

import (
	"fmt"
	"io"
)

// PlainRenderer prints response fragments incrementally as raw text.
// A spinner is shown only until the first fragment arrives.
type PlainRenderer struct {
	w       io.Writer
	spinner *Spinner
	started bool
}

// NewPlainRenderer creates a plain-text response renderer.
func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{w: w, spinner: NewSpinner(w)}
}

// Start is called before the first fragment is pulled.
func (r *PlainRenderer) Start() {
	r.started = false
	r.spinner.Start()
}

// Fragment prints the newly arrived chunk.
func (r *PlainRenderer) Fragment(chunk, total string) {
	if !r.started {
		r.spinner.Stop()
		r.started = true
	}
	fmt.Fprint(r.w, chunk)
}

// Done terminates the response with a newline so the next prompt
// starts on a fresh line.
func (r *PlainRenderer) Done(total string) {
	r.spinner.Stop()
	fmt.Fprintln(r.w)
}
