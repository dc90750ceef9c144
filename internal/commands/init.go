package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/aging"
	"github.com/cleared-dev/tally/internal/balancefeed"
	"github.com/cleared-dev/tally/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Tally workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")

	return cmd
}

func runInit(dir, name, entityType string) error {
	// Create directory structure.
	dirs := []string{
		"accounts",
		"journal",
		"balances",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tally.yaml.
	cfg := config.Default(name, entityType)
	if err := config.Save(filepath.Join(dir, "tally.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	chart := accounts.DefaultChart(entityType)
	svc := accounts.NewService(chart)
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write empty open-items and balance feed files (header only).
	if err := os.WriteFile(filepath.Join(dir, "open-items.csv"), []byte(aging.Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing open items: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "balances", "daily-balances.csv"), []byte(balancefeed.Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing balance feed: %w", err)
	}

	fmt.Printf("Initialized Tally workspace at %s\n", dir)
	return nil
}
