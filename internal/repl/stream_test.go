package repl

import (
	"context"
	"errors"
	"testing"

	"github.com/chai-cli/chai/internal/chat"
)

func TestSendAccumulatesFragmentsInOrder(t *testing.T) {
	stream := &fakeStream{fragments: []string{"Hi", "", " there", "", "!"}}
	backend := &fakeBackend{streams: []*fakeStream{stream}}
	state := NewStreamState()
	renderer := &recordingRenderer{state: state}
	c := NewController(backend, renderer, state)

	sess := chat.NewSession("m")
	res, err := c.Send(context.Background(), sess, "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if res.Text != "Hi there!" {
		t.Errorf("Text = %q, want %q", res.Text, "Hi there!")
	}
	if res.Interrupted {
		t.Error("Interrupted = true for a completed stream")
	}

	// Empty fragments are never rendered.
	want := []string{"Hi", " there", "!"}
	if len(renderer.chunks) != len(want) {
		t.Fatalf("rendered %d chunks, want %d", len(renderer.chunks), len(want))
	}
	for i := range want {
		if renderer.chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, renderer.chunks[i], want[i])
		}
	}
	if !renderer.started {
		t.Error("renderer Start() never called")
	}
	if renderer.doneCalls != 1 {
		t.Errorf("Done() called %d times, want 1", renderer.doneCalls)
	}
	if renderer.finalText != "Hi there!" {
		t.Errorf("final frame text = %q, want %q", renderer.finalText, "Hi there!")
	}
	if !stream.closed {
		t.Error("stream not closed after completion")
	}

	// User message committed by Send; assistant commit is the caller's.
	msgs := sess.Messages()
	if len(msgs) != 1 || msgs[0].Role != chat.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("history after send = %+v, want only User(hello)", msgs)
	}
}

func TestSendCancelledMidStream(t *testing.T) {
	stream := &fakeStream{fragments: []string{"one", "two", "three", "four"}}
	backend := &fakeBackend{streams: []*fakeStream{stream}}
	state := NewStreamState()
	renderer := &recordingRenderer{state: state, cancelAfter: 2}
	c := NewController(backend, renderer, state)

	sess := chat.NewSession("m")
	res, err := c.Send(context.Background(), sess, "go")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if !res.Interrupted {
		t.Error("Interrupted = false after mid-stream cancel")
	}
	if res.Text != "onetwo" {
		t.Errorf("Text = %q, want exactly the first two fragments", res.Text)
	}
	if stream.pos != 2 {
		t.Errorf("stream pulled %d times, want 2 (no draining past cancellation)", stream.pos)
	}
	if !stream.closed {
		t.Error("stream not closed after cancellation")
	}
	if state.Active() || state.Cancelled() {
		t.Error("state not reset after cancelled send")
	}
	if renderer.doneCalls != 1 {
		t.Errorf("Done() called %d times, want 1", renderer.doneCalls)
	}
}

func TestSendCancelledBeforeFirstPull(t *testing.T) {
	stream := &fakeStream{fragments: []string{"never"}}
	backend := &fakeBackend{streams: []*fakeStream{stream}}
	state := NewStreamState()
	renderer := &recordingRenderer{state: state}

	// Emulate a signal landing between Begin and the first pull.
	c := NewController(backend, &startCancelRenderer{recordingRenderer: renderer, state: state}, state)

	res, err := c.Send(context.Background(), chat.NewSession("m"), "go")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !res.Interrupted || res.Text != "" {
		t.Errorf("res = %+v, want interrupted with empty text", res)
	}
	if stream.pos != 0 {
		t.Errorf("stream pulled %d times, want 0", stream.pos)
	}
}

func TestSendStreamErrorPropagatesAfterCleanup(t *testing.T) {
	streamErr := errors.New("connection reset")
	stream := &fakeStream{fragments: []string{"partial", "x"}, errAt: 1, err: streamErr}
	backend := &fakeBackend{streams: []*fakeStream{stream}}
	state := NewStreamState()
	renderer := &recordingRenderer{state: state}
	c := NewController(backend, renderer, state)

	sess := chat.NewSession("m")
	_, err := c.Send(context.Background(), sess, "go")
	if !errors.Is(err, streamErr) {
		t.Fatalf("Send() error = %v, want %v", err, streamErr)
	}

	if state.Active() || state.Cancelled() {
		t.Error("state not reset after stream error")
	}
	if !stream.closed {
		t.Error("stream not closed after error")
	}
	// The user message is still recorded.
	if sess.Len() != 1 || sess.Messages()[0].Role != chat.RoleUser {
		t.Errorf("history after failed send = %+v", sess.Messages())
	}
}

func TestSendBackendErrorLeavesStateIdle(t *testing.T) {
	backendErr := errors.New("bad credentials")
	backend := &fakeBackend{err: backendErr}
	state := NewStreamState()
	c := NewController(backend, &recordingRenderer{state: state}, state)

	sess := chat.NewSession("m")
	_, err := c.Send(context.Background(), sess, "go")
	if !errors.Is(err, backendErr) {
		t.Fatalf("Send() error = %v, want %v", err, backendErr)
	}
	if state.Active() {
		t.Error("state active after failed stream open")
	}
}

func TestCancelInactiveStateIsNoOp(t *testing.T) {
	state := NewStreamState()
	if state.Cancel() {
		t.Error("Cancel() on idle state reported an effect")
	}
	if state.Cancelled() {
		t.Error("idle state marked cancelled")
	}
}

// startCancelRenderer cancels as soon as streaming starts, before any
// fragment is pulled.
type startCancelRenderer struct {
	*recordingRenderer
	state *StreamState
}

func (r *startCancelRenderer) Start() {
	r.recordingRenderer.Start()
	r.state.Cancel()
}
