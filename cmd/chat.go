package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chai-cli/chai/internal/chat"
	"github.com/chai-cli/chai/internal/config"
	"github.com/chai-cli/chai/internal/provider"
	"github.com/chai-cli/chai/internal/render"
	"github.com/chai-cli/chai/internal/repl"
)

var chatCmd = &cobra.Command{
	Use:   "chat [model]",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with a model.

The model is given as provider:modelname, e.g. openai:gpt-4o-mini.
When omitted, the default model from the config file is used.

In-session commands:
  /clear, /save <file>, /load <file>, /bye, /?

Use """ to begin a multi-line message.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	modelSpec := cfg.DefaultModel
	if len(args) == 1 {
		modelSpec = args[0]
	}
	usePlain := plain || cfg.Plain

	key, modelName, err := provider.SplitModel(modelSpec)
	if err != nil {
		return err
	}

	p, err := provider.Get(key)
	if err != nil {
		return err
	}

	backend, err := p.NewBackend(modelName)
	if err != nil {
		return fmt.Errorf("initializing chat: %w", err)
	}

	var md *render.Markdown
	if !usePlain {
		md, err = render.NewMarkdown(render.TerminalWidth(os.Stdout))
		if err != nil {
			return fmt.Errorf("initializing renderer: %w", err)
		}
	}

	sess := chat.NewSession(modelSpec)

	reader := repl.NewTerminalReader()
	defer reader.Close()

	loop := repl.NewLoop(sess, backend, reader, repl.Options{
		Plain:    usePlain,
		Markdown: md,
	})

	restore := repl.BindInterrupt(loop.State())
	defer restore()

	return loop.Run(cmd.Context())
}
