package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chai-cli/chai/internal/update"
)

var (
	checkOnly     bool
	forceUpdate   bool
	updateTimeout time.Duration
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update chai to the latest version",
	Long: `Check for and install updates from GitHub Releases.

Examples:
  chai update              # Check and install update interactively
  chai update --check      # Only check for updates
  chai update --force      # Update without confirmation`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Only check for updates, don't install")
	updateCmd.Flags().BoolVarP(&forceUpdate, "force", "f", false, "Update without confirmation")
	updateCmd.Flags().DurationVar(&updateTimeout, "timeout", 30*time.Second, "Timeout for network operations")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	fmt.Println("Checking for updates...")
	fmt.Printf("Current version: %s\n", version)

	release, err := update.Check(ctx, version)
	if err != nil {
		if errors.Is(err, update.ErrDevVersion) {
			fmt.Println("\nYou are running a development build.")
			fmt.Println("Auto-update is only available for released versions.")
			return nil
		}
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if release == nil {
		fmt.Println("\nYou are running the latest version.")
		return nil
	}

	fmt.Printf("Latest version:  %s\n", release.Version)
	if release.Notes != "" {
		fmt.Println("\nRelease notes:")
		for _, line := range strings.Split(release.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	if checkOnly {
		fmt.Println("\nRun 'chai update' to install the update.")
		return nil
	}

	if !forceUpdate {
		fmt.Print("\nDo you want to update? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Update cancelled.")
			return nil
		}
	}

	fmt.Printf("\nDownloading %s...\n", release.AssetName)

	// The download gets its own, longer deadline.
	cancel()
	downloadCtx, downloadCancel := context.WithTimeout(context.Background(), updateTimeout*2)
	defer downloadCancel()

	if err := update.Apply(downloadCtx, release); err != nil {
		return err
	}

	fmt.Printf("\nSuccessfully updated to v%s!\n", release.Version)
	return nil
}
