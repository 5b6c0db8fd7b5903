package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chai-cli/chai/internal/chat"
)

func TestPlainRendererIncrementalOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)

	r.Start()
	r.Fragment("Hi", "Hi")
	r.Fragment(" there", "Hi there")
	r.Fragment("!", "Hi there!")
	r.Done("Hi there!")

	if got := buf.String(); got != "Hi there!\n" {
		t.Errorf("output = %q, want %q", got, "Hi there!\n")
	}
}

func TestPlainRendererDoneWithoutFragments(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)

	r.Start()
	r.Done("")

	if got := buf.String(); got != "\n" {
		t.Errorf("output = %q, want a single newline", got)
	}
}

func TestMarkdownWidthFallback(t *testing.T) {
	md, err := NewMarkdown(0)
	if err != nil {
		t.Fatalf("NewMarkdown() error = %v", err)
	}
	if md.Width() != DefaultWidth {
		t.Errorf("Width() = %d, want %d", md.Width(), DefaultWidth)
	}
}

func TestTerminalWidthNonTerminal(t *testing.T) {
	if got := TerminalWidth(&bytes.Buffer{}); got != DefaultWidth {
		t.Errorf("TerminalWidth() = %d, want %d", got, DefaultWidth)
	}
}

func TestSpinnerInertOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)

	s.Start()
	s.Stop()
	// Stop without Start must also be safe.
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestPrintHistoryPlain(t *testing.T) {
	var buf bytes.Buffer
	msgs := []chat.Message{
		{Role: chat.RoleUser, Content: "question"},
		{Role: chat.RoleAssistant, Content: "answer"},
	}

	PrintHistory(&buf, nil, true, "openai:gpt-4o-mini", msgs)

	out := buf.String()
	if !strings.Contains(out, "question") {
		t.Errorf("output %q missing user message", out)
	}
	if !strings.Contains(out, "answer") {
		t.Errorf("output %q missing assistant message", out)
	}
	if !strings.Contains(out, ">>>") {
		t.Errorf("output %q missing prompt echo before user message", out)
	}
}

func TestLiveRendererFinalFrameAlwaysDrawn(t *testing.T) {
	md, err := NewMarkdown(40)
	if err != nil {
		t.Fatalf("NewMarkdown() error = %v", err)
	}

	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, md)

	r.Start()
	// Many rapid fragments: intermediate frames may be skipped by the
	// redraw budget, but the final frame must contain everything.
	total := ""
	for _, frag := range []string{"alpha ", "beta ", "gamma ", "delta"} {
		total += frag
		r.Fragment(frag, total)
	}
	r.Done(total)

	if !strings.Contains(buf.String(), "delta") {
		t.Errorf("final frame missing tail of response: %q", buf.String())
	}
}
