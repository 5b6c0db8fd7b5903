package repl

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind CommandKind
		wantName string
		wantArgs []string
	}{
		{name: "bye", line: "/bye", wantKind: CmdExit, wantName: "/bye"},
		{name: "clear", line: "/clear", wantKind: CmdClear, wantName: "/clear"},
		{name: "save with file", line: "/save notes.json", wantKind: CmdSave, wantName: "/save", wantArgs: []string{"notes.json"}},
		{name: "load with file", line: "/load notes.json", wantKind: CmdLoad, wantName: "/load", wantArgs: []string{"notes.json"}},
		{name: "help short", line: "/?", wantKind: CmdHelp, wantName: "/?"},
		{name: "help long", line: "/help", wantKind: CmdHelp, wantName: "/help"},
		{name: "unknown", line: "/foo bar", wantKind: CmdUnknown, wantName: "/foo", wantArgs: []string{"bar"}},
		{name: "case sensitive", line: "/BYE", wantKind: CmdUnknown, wantName: "/BYE"},
		{name: "extra whitespace", line: "/save   a   b", wantKind: CmdSave, wantName: "/save", wantArgs: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParseCommand(tt.line)
			if cmd.Kind != tt.wantKind {
				t.Errorf("Kind = %d, want %d", cmd.Kind, tt.wantKind)
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}
