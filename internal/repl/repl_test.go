package repl

// Shared test fakes for the session loop, stream controller, and
// command handlers.

import (
	"context"
	"errors"
	"io"

	"github.com/chai-cli/chai/internal/chat"
)

var errTest = errors.New("boom")

// abortOnceReader aborts the first prompt, then delegates.
type abortOnceReader struct {
	aborted bool
	next    *scriptReader
}

func (r *abortOnceReader) Prompt(prompt string) (string, error) {
	if !r.aborted {
		r.aborted = true
		return "", ErrInputAborted
	}
	return r.next.Prompt(prompt)
}

func (r *abortOnceReader) AppendHistory(item string) {
	r.next.AppendHistory(item)
}

// scriptReader replays a fixed sequence of input lines, then io.EOF.
type scriptReader struct {
	lines   []string
	history []string
}

func (r *scriptReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

// fakeStream serves scripted fragments. It records how many fragments
// were pulled and whether Close was called, and fails the pull at
// errAt (0-based) with err when set.
type fakeStream struct {
	fragments []string
	pos       int
	closed    bool
	errAt     int
	err       error
}

func (s *fakeStream) Next() (string, error) {
	if s.err != nil && s.pos == s.errAt {
		return "", s.err
	}
	if s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	frag := s.fragments[s.pos]
	s.pos++
	return frag, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// fakeBackend hands out one scripted stream per Stream call.
type fakeBackend struct {
	streams []*fakeStream
	err     error
	calls   int
}

func (b *fakeBackend) Stream(_ context.Context, _ []chat.Message) (chat.FragmentStream, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.calls >= len(b.streams) {
		return &fakeStream{}, nil
	}
	s := b.streams[b.calls]
	b.calls++
	return s, nil
}

// recordingRenderer captures renderer callbacks and can trigger
// cancellation after a given number of fragments, emulating a SIGINT
// arriving between a fragment render and the next pull.
type recordingRenderer struct {
	started     bool
	chunks      []string
	finalText   string
	doneCalls   int
	cancelAfter int // 0 disables
	state       *StreamState
}

func (r *recordingRenderer) Start() {
	r.started = true
}

func (r *recordingRenderer) Fragment(chunk, total string) {
	r.chunks = append(r.chunks, chunk)
	if r.cancelAfter > 0 && len(r.chunks) == r.cancelAfter {
		r.state.Cancel()
	}
}

func (r *recordingRenderer) Done(total string) {
	r.finalText = total
	r.doneCalls++
}

// memStore is an in-memory Store.
type memStore struct {
	files   map[string][]chat.Message
	saveErr error
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]chat.Message{}}
}

func (s *memStore) Path(filename string) (string, error) {
	return "/saves/" + filename, nil
}

func (s *memStore) Exists(filename string) bool {
	_, ok := s.files[filename]
	return ok
}

func (s *memStore) Save(sess *chat.Session, filename string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.files[filename] = sess.Messages()
	return "/saves/" + filename, nil
}

func (s *memStore) Load(filename string, sess *chat.Session) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	msgs, ok := s.files[filename]
	if !ok {
		return io.ErrUnexpectedEOF
	}
	sess.Replace(msgs)
	return nil
}
