package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/ftskel/internal/config"
	"github.com/chriserin/ftskel/internal/db"
	"github.com/chriserin/ftskel/internal/parser"
	"github.com/chriserin/ftskel/internal/ui"
)

var (
	kindFlag string
	tagFlag  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios recorded by sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.Context(), cmd.OutOrStdout(), cfg, kindFlag, tagFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&kindFlag, "kind", "", "Filter by kind: scenario or outline")
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Filter by tag, e.g. @smoke")
	rootCmd.AddCommand(listCmd)
}

func RunList(ctx context.Context, w io.Writer, cfg *config.Config, kind, tag string) error {
	switch parser.Kind(kind) {
	case "", parser.KindScenario, parser.KindOutline:
	default:
		return fmt.Errorf("invalid kind %q: must be %s or %s", kind, parser.KindScenario, parser.KindOutline)
	}

	if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
		return notInitialized()
	}

	sqlDB, err := db.Open(ctx, cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	results, err := db.ListScenarios(ctx, sqlDB, kind, tag)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	fileWidth, kindWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		fileWidth = max(fileWidth, len(filepath.Base(r.FilePath)))
		kindWidth = max(kindWidth, len(r.Kind))
		nameWidth = max(nameWidth, len(r.Name))
	}

	for _, r := range results {
		ui.ListRow(w, filepath.Base(r.FilePath), r.Kind, r.Name, r.Tags, fileWidth, kindWidth, nameWidth)
	}

	return nil
}
