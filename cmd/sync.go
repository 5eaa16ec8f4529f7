package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chriserin/ftskel/internal/config"
	"github.com/chriserin/ftskel/internal/db"
	"github.com/chriserin/ftskel/internal/generator"
	"github.com/chriserin/ftskel/internal/parser"
	"github.com/chriserin/ftskel/internal/ui"
	"github.com/chriserin/ftskel/internal/worker"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate skeletons for every feature file and record them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

// rendered is the outcome of parsing and generating one feature file.
type rendered struct {
	parsed   *parser.ParsedFile
	output   string
	dest     string
	checksum string
}

func RunSync(ctx context.Context, w io.Writer, cfg *config.Config) error {
	if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
		return notInitialized()
	}

	sqlDB, err := db.Open(ctx, cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	sort.Strings(matches)
	log.Debug().Int("files", len(matches)).Str("dir", cfg.FeaturesDir).Msg("Discovered feature files")

	opts := cfg.GeneratorOptions()
	pool := worker.NewPool(cfg.Workers, func(ctx context.Context, path string) (*rendered, error) {
		return render(path, cfg.OutputPath(path), opts)
	})
	tasks := pool.Execute(ctx, matches)
	if err := ctx.Err(); err != nil {
		return err
	}

	count := 0
	for _, task := range tasks {
		if task.Err != nil {
			ui.ErrLine(w, task.Input, task.Err)
			continue
		}
		r := task.Result

		prev, known, err := db.Checksum(ctx, sqlDB, r.parsed.Path)
		if err != nil {
			return err
		}
		_, statErr := os.Stat(r.dest)
		unchanged := known && prev == r.checksum && statErr == nil

		if !unchanged {
			if err := writeOutput(r.dest, r.output); err != nil {
				return err
			}
			if _, err := db.SaveFile(ctx, sqlDB, r.parsed, r.checksum, r.dest); err != nil {
				return err
			}
		}

		switch {
		case !known:
			ui.NewLine(w, r.parsed.Path)
		case unchanged:
			ui.TrkLine(w, r.parsed.Path)
		default:
			ui.UpdLine(w, r.parsed.Path)
		}
		count++
	}

	removed, err := db.Prune(ctx, sqlDB, matches)
	if err != nil {
		return err
	}
	for _, path := range removed {
		ui.DelLine(w, path)
	}

	ui.SummaryLine(w, count)
	return nil
}

// render parses and generates one file. It shares nothing with other calls.
func render(path, dest string, opts generator.Options) (*rendered, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f := parser.ParseContent(content)
	return &rendered{
		parsed:   parser.Transform(f, path),
		output:   generator.GenerateWith(f, opts),
		dest:     dest,
		checksum: checksum(content, dest, opts),
	}, nil
}

// checksum covers everything that changes the generated output.
func checksum(content []byte, dest string, opts generator.Options) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "\x00%s\x00%s\x00%q", dest, opts.Runner, opts.Indent)
	return hex.EncodeToString(h.Sum(nil))
}
