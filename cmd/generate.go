package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chriserin/ftskel/internal/config"
	"github.com/chriserin/ftskel/internal/generator"
	"github.com/chriserin/ftskel/internal/parser"
	"github.com/chriserin/ftskel/internal/ui"
)

// GenerateOptions are the per-invocation overrides of the generate command.
type GenerateOptions struct {
	Out    string
	Stdout bool
	Runner string
}

var generateOpts GenerateOptions

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a test skeleton from a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGenerate(cmd.OutOrStdout(), cfg, args[0], generateOpts)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.Out, "out", "o", "", "Output file (default: derived from the feature file)")
	generateCmd.Flags().BoolVar(&generateOpts.Stdout, "stdout", false, "Print the generated code instead of writing a file")
	generateCmd.Flags().StringVar(&generateOpts.Runner, "runner", "", "Test runner: mocha or jest (default from config)")
	rootCmd.AddCommand(generateCmd)
}

func RunGenerate(w io.Writer, cfg *config.Config, path string, opts GenerateOptions) error {
	genOpts := cfg.GeneratorOptions()
	if opts.Runner != "" {
		r := generator.Runner(opts.Runner)
		if !r.IsValid() {
			return fmt.Errorf("invalid runner %q: must be one of %v", opts.Runner, generator.ValidRunners())
		}
		genOpts.Runner = r
	}

	content, err := readFeature(path)
	if err != nil {
		return err
	}
	f := parser.ParseContent(content)
	out := generator.GenerateWith(f, genOpts)

	if opts.Stdout {
		fmt.Fprintln(w, out)
		return nil
	}

	dest := opts.Out
	if dest == "" {
		dest = cfg.OutputPath(path)
	}
	if err := writeOutput(dest, out); err != nil {
		return err
	}

	log.Info().Str("file", path).Str("output", dest).Int("scenarios", len(f.Scenarios)).Msg("Generated skeleton")
	ui.WroteLine(w, dest, testCases(f))
	return nil
}

func readFeature(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, NotFoundError("reading "+path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

func writeOutput(dest, out string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// testCases counts the cases the generator emits for f.
func testCases(f *parser.Feature) int {
	n := len(f.Scenarios)
	if f.Background != nil && len(f.Background.Steps) > 0 {
		n++
	}
	return n
}
