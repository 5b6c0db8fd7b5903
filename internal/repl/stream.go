package repl

import (
	"context"
	"io"
	"strings"

	"github.com/chai-cli/chai/internal/chat"
)

// ResponseRenderer receives streaming progress. The controller decides
// when to render; implementations decide how.
type ResponseRenderer interface {
	// Start is called once per send, before the first fragment is
	// pulled.
	Start()

	// Fragment is called for every non-empty fragment, in arrival
	// order, with the new chunk and the accumulated text so far.
	Fragment(chunk, total string)

	// Done finalizes the output (stable final frame, trailing newline)
	// with the full accumulated text.
	Done(total string)
}

// Result is the outcome of one completed send.
type Result struct {
	// Text is the accumulated assistant response: the concatenation of
	// all non-empty fragments received before completion or
	// cancellation.
	Text string

	// Interrupted is true when the stream was cancelled before its
	// natural end.
	Interrupted bool
}

// Controller drives one response stream at a time: it pulls fragments,
// accumulates them, renders incrementally, and honors cooperative
// cancellation at fragment boundaries.
type Controller struct {
	backend  chat.Backend
	renderer ResponseRenderer
	state    *StreamState
}

// NewController creates a stream controller. The state is shared with
// the interrupt bridge.
func NewController(backend chat.Backend, renderer ResponseRenderer, state *StreamState) *Controller {
	return &Controller{backend: backend, renderer: renderer, state: state}
}

// State returns the controller's shared stream state.
func (c *Controller) State() *StreamState {
	return c.state
}

// Send forwards the user input to the backend and renders the streamed
// response. The user message is appended to the session before the
// stream opens, so history reflects what was asked even when the
// response is interrupted or fails. Committing the assistant reply is
// the caller's responsibility.
//
// On every exit path the stream is closed and the shared state is
// reset. A mid-stream error propagates after cleanup; cancellation is
// not an error.
func (c *Controller) Send(ctx context.Context, sess *chat.Session, input string) (Result, error) {
	sess.Append(chat.Message{Role: chat.RoleUser, Content: input})

	stream, err := c.backend.Stream(ctx, sess.Messages())
	if err != nil {
		return Result{}, err
	}

	c.state.Begin()
	defer c.state.Finish()
	defer stream.Close()

	c.renderer.Start()

	var sb strings.Builder
	for {
		if c.state.Cancelled() {
			break
		}

		frag, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.renderer.Done(sb.String())
			return Result{}, err
		}

		if frag != "" {
			sb.WriteString(frag)
			c.renderer.Fragment(frag, sb.String())
		}

		if c.state.Cancelled() {
			break
		}
	}

	c.renderer.Done(sb.String())

	// Read the flag before the deferred Finish resets it.
	return Result{Text: sb.String(), Interrupted: c.state.Cancelled()}, nil
}
