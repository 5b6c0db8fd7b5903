package api

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// StreamReader turns the SSE body of a streaming completion into a pull
// sequence of text fragments. It satisfies chat.FragmentStream: Next
// returns io.EOF at the natural end of the stream, and Close may be
// called at any point to abandon the stream early and release the
// underlying connection.
type StreamReader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
	done    bool
}

// NewStreamReader creates a StreamReader that owns the given body.
func NewStreamReader(body io.ReadCloser) *StreamReader {
	return &StreamReader{
		scanner: bufio.NewScanner(body),
		body:    body,
	}
}

// Next returns the next text fragment of the response. A fragment may
// be empty; callers decide whether empty fragments are meaningful.
// Next returns io.EOF once the stream has ended.
func (r *StreamReader) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()

		// Skip blank keep-alive lines and SSE comments.
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			r.done = true
			return "", io.EOF
		}

		var resp chatResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			// Skip malformed chunks
			continue
		}

		if resp.Error != nil {
			r.done = true
			return "", &APIError{Message: resp.Error.Message}
		}

		if len(resp.Choices) > 0 {
			return resp.Choices[0].Delta.Content, nil
		}
	}

	r.done = true

	if err := r.scanner.Err(); err != nil {
		return "", &StreamError{Message: "reading stream", Cause: err}
	}

	// Stream ended without a [DONE] signal.
	return "", io.EOF
}

// Close abandons the stream and closes the underlying body.
func (r *StreamReader) Close() error {
	r.done = true
	return r.body.Close()
}
