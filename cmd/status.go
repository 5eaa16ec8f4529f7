package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/ftskel/internal/config"
	"github.com/chriserin/ftskel/internal/db"
	"github.com/chriserin/ftskel/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registry totals and the files the next sync would change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(ctx context.Context, w io.Writer, cfg *config.Config) error {
	if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
		return notInitialized()
	}

	sqlDB, err := db.Open(ctx, cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	registered, err := db.Files(ctx, sqlDB)
	if err != nil {
		return err
	}
	counts, err := db.CountByKind(ctx, sqlDB)
	if err != nil {
		return err
	}

	total := 0
	for _, kc := range counts {
		total += kc.Count
	}
	fmt.Fprintf(w, "Files: %d\n", len(registered))
	fmt.Fprintf(w, "Scenarios: %d\n", total)
	for _, kc := range counts {
		fmt.Fprintf(w, "  %s: %d\n", kc.Kind, kc.Count)
	}

	matches, err := filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	sort.Strings(matches)

	opts := cfg.GeneratorOptions()
	pending := 0
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			ui.ErrLine(w, path, err)
			pending++
			continue
		}
		dest := cfg.OutputPath(path)
		prev, known, err := db.Checksum(ctx, sqlDB, path)
		if err != nil {
			return err
		}
		_, statErr := os.Stat(dest)

		switch {
		case !known:
			ui.NewLine(w, path)
		case prev != checksum(content, dest, opts) || statErr != nil:
			ui.UpdLine(w, path)
		default:
			continue
		}
		pending++
	}

	for _, path := range registered {
		if !slices.Contains(matches, path) {
			ui.DelLine(w, path)
			pending++
		}
	}

	if pending == 0 {
		fmt.Fprintln(w, "up to date")
	}
	return nil
}
