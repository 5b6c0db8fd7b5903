package repl

import (
	"os"
	"os/signal"
)

// BindInterrupt routes SIGINT to cooperative cancellation of the
// in-flight send. When no send is active the signal is a no-op at this
// layer: at the prompt the line reader handles Ctrl-C itself. The
// returned restore func unregisters the handler so the prior signal
// disposition comes back when the session ends.
func BindInterrupt(state *StreamState) (restore func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ch {
			// Flag write only; a signal handler must never block.
			state.Cancel()
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}
