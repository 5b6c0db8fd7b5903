package render

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/time/rate"
)

// LiveRefreshPerSecond bounds how often the live frame is redrawn so a
// fast stream does not flood the terminal.
const LiveRefreshPerSecond = 20

// LiveRenderer re-renders the whole accumulated response as formatted
// markdown on each update, replacing the previous frame in place. The
// final frame is always drawn, regardless of the redraw budget.
type LiveRenderer struct {
	out       *termenv.Output
	md        *Markdown
	spinner   *Spinner
	limiter   *rate.Limiter
	prevLines int
	started   bool
}

// NewLiveRenderer creates a live markdown renderer drawing to w.
func NewLiveRenderer(w io.Writer, md *Markdown) *LiveRenderer {
	return &LiveRenderer{
		out:     termenv.NewOutput(w),
		md:      md,
		spinner: NewSpinner(w),
		limiter: rate.NewLimiter(rate.Limit(LiveRefreshPerSecond), 1),
	}
}

// Start is called before the first fragment is pulled.
func (r *LiveRenderer) Start() {
	r.started = false
	r.prevLines = 0
	r.spinner.Start()
}

// Fragment redraws the accumulated response, at most
// LiveRefreshPerSecond times per second.
func (r *LiveRenderer) Fragment(chunk, total string) {
	if !r.started {
		r.spinner.Stop()
		r.started = true
	}
	if !r.limiter.Allow() {
		return
	}
	r.drawFrame(total)
}

// Done draws the final, stable frame.
func (r *LiveRenderer) Done(total string) {
	r.spinner.Stop()
	if total == "" && r.prevLines == 0 {
		return
	}
	r.drawFrame(total)
}

func (r *LiveRenderer) drawFrame(total string) {
	rendered, err := r.md.Render(total)
	if err != nil {
		// Degrade to raw text rather than lose output.
		rendered = total + "\n"
	}

	if r.prevLines > 0 {
		r.out.ClearLines(r.prevLines)
	}
	r.out.WriteString("\r")
	r.out.WriteString(rendered)
	r.prevLines = strings.Count(rendered, "\n")
}
