package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chai-cli/chai/internal/provider"
	"github.com/chai-cli/chai/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models",
	Long: `List the models available from each configured provider.

Providers whose API key environment variable is not set are shown with
a note naming the variable. Model IDs are printed as provider:model,
ready to pass to 'chai chat'.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	doc := buildModelList(cmd)

	if plain {
		fmt.Println(doc)
		return nil
	}

	md, err := render.NewMarkdown(render.TerminalWidth(os.Stdout))
	if err != nil {
		return err
	}
	rendered, err := md.Render(doc)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

// buildModelList returns a markdown document listing all models per
// provider. Per-provider failures are reported inline so one
// unreachable endpoint does not hide the rest.
func buildModelList(cmd *cobra.Command) string {
	var sb strings.Builder
	sb.WriteString("# Available Models")

	for _, p := range provider.All() {
		sb.WriteString("\n\n## " + p.Name)

		if _, ok := p.APIKey(); !ok {
			fmt.Fprintf(&sb, "\n\nAPI key environment variable (%s) not set.", p.APIKeyEnv)
			continue
		}

		models, err := p.ListModels(cmd.Context())
		if err != nil {
			fmt.Fprintf(&sb, "\n\nError listing models: %v", err)
			continue
		}

		if len(models) == 0 {
			sb.WriteString("\n\nNo models available.")
			continue
		}
		for _, id := range models {
			fmt.Fprintf(&sb, "\n* %s:%s", p.Key, id)
		}
	}

	return sb.String()
}
