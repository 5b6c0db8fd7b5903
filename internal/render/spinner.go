package render

import (
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// spinnerFrames are the dot frames drawn while waiting for the first
// response fragment.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a transient waiting indicator on its own goroutine.
// It only draws when the writer is an interactive terminal, so tests
// and piped output stay clean. Start and Stop are idempotent.
type Spinner struct {
	w   io.Writer
	out *termenv.Output

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that draws to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, out: termenv.NewOutput(w)}
}

// Start begins the animation. No-op when already running or when the
// writer is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !isTerminal(s.w) {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	s.out.HideCursor()

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.out.WriteString("\r" + spinnerFrames[frame%len(spinnerFrames)] + " ")
				frame++
			}
		}
	}(s.stop, s.done)
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	close(s.stop)
	<-s.done

	s.out.WriteString("\r")
	s.out.ClearLine()
	s.out.ShowCursor()
}
