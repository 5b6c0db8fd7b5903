package render

import (
	"fmt"
	"io"

	"github.com/chai-cli/chai/internal/chat"
)

// PrintHistory re-displays a conversation, e.g. after loading a saved
// chat. User messages echo the prompt they were typed at; assistant
// messages are rendered as markdown unless plain mode is on.
func PrintHistory(w io.Writer, md *Markdown, plain bool, model string, messages []chat.Message) {
	for _, msg := range messages {
		if msg.Role == chat.RoleUser {
			fmt.Fprintf(w, "\n%s%s\n", Prompt(model), msg.Content)
			continue
		}
		if plain || md == nil {
			fmt.Fprintln(w, msg.Content)
			continue
		}
		rendered, err := md.Render(msg.Content)
		if err != nil {
			fmt.Fprintln(w, msg.Content)
			continue
		}
		fmt.Fprint(w, rendered)
	}
}
