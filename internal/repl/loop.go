package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chai-cli/chai/internal/chat"
	"github.com/chai-cli/chai/internal/render"
)

// Options configures a session loop. Zero values pick interactive
// defaults; tests inject fakes.
type Options struct {
	// Plain selects raw incremental output instead of live markdown
	// frames.
	Plain bool

	// Out receives all session output. Defaults to os.Stdout.
	Out io.Writer

	// Markdown renders assistant content in formatted mode. Required
	// unless Plain is set or Renderer is provided.
	Markdown *render.Markdown

	// Renderer overrides the response renderer chosen from Plain.
	Renderer ResponseRenderer

	// Store overrides the persistence backend for /save and /load.
	Store Store
}

// Loop is the interactive read-eval-print loop of one chat session. It
// owns the session state exclusively; the only value shared with other
// goroutines is the stream cancellation flag.
type Loop struct {
	sess       *chat.Session
	reader     LineReader
	out        io.Writer
	md         *render.Markdown
	plain      bool
	store      Store
	controller *Controller
	handlers   map[CommandKind]func(Command) bool
}

// NewLoop wires a session loop for the given conversation and backend.
func NewLoop(sess *chat.Session, backend chat.Backend, reader LineReader, opts Options) *Loop {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	renderer := opts.Renderer
	if renderer == nil {
		if opts.Plain {
			renderer = render.NewPlainRenderer(out)
		} else {
			renderer = render.NewLiveRenderer(out, opts.Markdown)
		}
	}

	store := opts.Store
	if store == nil {
		store = fileStore{}
	}

	l := &Loop{
		sess:       sess,
		reader:     reader,
		out:        out,
		md:         opts.Markdown,
		plain:      opts.Plain,
		store:      store,
		controller: NewController(backend, renderer, NewStreamState()),
	}

	l.handlers = map[CommandKind]func(Command) bool{
		CmdExit:    l.handleExit,
		CmdClear:   l.handleClear,
		CmdSave:    l.handleSave,
		CmdLoad:    l.handleLoad,
		CmdHelp:    l.handleHelp,
		CmdUnknown: l.handleUnknown,
	}

	return l
}

// State exposes the shared stream state for the interrupt bridge.
func (l *Loop) State() *StreamState {
	return l.controller.State()
}

// Run drives the loop until clean termination: /bye or end of input.
// Errors from sends and commands are reported inline and never end the
// loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		input, err := l.readInput()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(l.out, "\nExiting.")
				return nil
			}
			if errors.Is(err, ErrInputAborted) {
				// Ctrl-C at the prompt: blank line, re-prompt.
				fmt.Fprintln(l.out)
				continue
			}
			return err
		}

		if input == "" {
			continue
		}
		l.reader.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if exit := l.dispatch(input); exit {
				fmt.Fprintln(l.out, "\nExiting.")
				return nil
			}
			continue
		}

		res, err := l.controller.Send(ctx, l.sess, input)
		if err != nil {
			fmt.Fprintln(l.out, render.ErrorLine(err.Error()))
		} else if !res.Interrupted && res.Text != "" {
			l.sess.Append(chat.Message{Role: chat.RoleAssistant, Content: res.Text})
		}

		fmt.Fprintln(l.out)
	}
}

// readInput acquires one logical input line, handling multi-line mode:
// a line opening with the sentinel collects right-trimmed physical
// lines until one closes with it; the collected lines are joined with
// newlines, sentinels stripped.
func (l *Loop) readInput() (string, error) {
	line, err := l.reader.Prompt(render.Prompt(l.sess.Model()))
	if err != nil {
		return "", err
	}

	input := strings.TrimSpace(line)
	if !strings.HasPrefix(input, MultiLineSentinel) {
		return input, nil
	}

	lines := []string{strings.TrimPrefix(input, MultiLineSentinel)}
	for {
		raw, err := l.reader.Prompt("")
		if err != nil {
			return "", err
		}
		phys := strings.TrimRight(raw, " \t\r")
		if strings.HasSuffix(phys, MultiLineSentinel) {
			lines = append(lines, strings.TrimSuffix(phys, MultiLineSentinel))
			break
		}
		lines = append(lines, phys)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// dispatch routes one command line through the handler table.
func (l *Loop) dispatch(input string) (exit bool) {
	cmd := ParseCommand(input)
	exit = l.handlers[cmd.Kind](cmd)
	if !exit {
		fmt.Fprintln(l.out)
	}
	return exit
}

func (l *Loop) handleExit(Command) bool {
	return true
}

func (l *Loop) handleClear(Command) bool {
	l.sess.Clear()
	fmt.Fprintln(l.out, "Cleared chat history.")
	return false
}

func (l *Loop) handleHelp(Command) bool {
	fmt.Fprintln(l.out, helpText)
	return false
}

func (l *Loop) handleUnknown(cmd Command) bool {
	fmt.Fprintf(l.out, "Unknown command: '%s'. Type /? for help.\n", cmd.Name)
	return false
}

func (l *Loop) handleSave(cmd Command) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(l.out, "Usage:\n  /save <file>")
		return false
	}

	if l.sess.Len() == 0 {
		fmt.Fprintln(l.out, "No chat history to save.")
		return false
	}

	filename := cmd.Args[0]
	if strings.ContainsAny(filename, `/\`) {
		fmt.Fprintln(l.out, "Invalid filename.")
		return false
	}

	if l.store.Exists(filename) {
		path, _ := l.store.Path(filename)
		if !l.confirm(fmt.Sprintf("File '%s' already exists. Overwrite? (y/n) ", path)) {
			return false
		}
	}

	path, err := l.store.Save(l.sess, filename)
	if err != nil {
		fmt.Fprintf(l.out, "Error saving chat: %v\n", err)
		return false
	}
	fmt.Fprintf(l.out, "\nSaved chat to '%s'.\n", path)
	return false
}

func (l *Loop) handleLoad(cmd Command) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(l.out, "Usage:\n  /load <file>")
		return false
	}

	if l.sess.Len() > 0 && !l.confirm("Overwrite current chat? (y/n) ") {
		return false
	}

	if err := l.store.Load(cmd.Args[0], l.sess); err != nil {
		fmt.Fprintf(l.out, "Error loading chat: %v\n", err)
		return false
	}

	render.PrintHistory(l.out, l.md, l.plain, l.sess.Model(), l.sess.Messages())
	return false
}

// confirm asks a yes/no question on the input line; anything but "y"
// declines.
func (l *Loop) confirm(prompt string) bool {
	line, err := l.reader.Prompt(prompt)
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
