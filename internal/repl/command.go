package repl

import "strings"

// CommandKind is the closed set of in-session commands. Parsing decides
// the kind once per input line; dispatch goes through a handler table.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdExit
	CmdClear
	CmdSave
	CmdLoad
	CmdHelp
)

// Command is one parsed command line. Name keeps the literal first
// token for unknown-command messages.
type Command struct {
	Kind CommandKind
	Name string
	Args []string
}

// ParseCommand splits a line known to start with the command prefix
// into a command and its arguments. Matching is case-sensitive.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdUnknown}
	}

	name := fields[0]
	args := fields[1:]

	var kind CommandKind
	switch name {
	case "/bye":
		kind = CmdExit
	case "/clear":
		kind = CmdClear
	case "/save":
		kind = CmdSave
	case "/load":
		kind = CmdLoad
	case "/?", "/help":
		kind = CmdHelp
	default:
		kind = CmdUnknown
	}

	return Command{Kind: kind, Name: name, Args: args}
}

const helpText = `Available Commands:
  /clear            Clear chat history
  /save <file>      Save chat to a file
  /load <file>      Load chat from a file
  /bye              Exit
  /?, /help         Print available commands

Use """ to begin a multi-line message.`
