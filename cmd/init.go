package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/ftskel/internal/config"
	"github.com/chriserin/ftskel/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ftskel in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(ctx context.Context, w io.Writer, cfg *config.Config) error {
	dir := cfg.FeaturesDir
	_, err := os.Stat(dir)
	dirExists := err == nil
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", dir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", dir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", dir)
	}

	dbPath := cfg.DBPath()
	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", filepath.ToSlash(dbPath))
	} else {
		fmt.Fprintf(w, "%s created\n", filepath.ToSlash(dbPath))
	}

	created, err := config.WriteDefault(config.FileName)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "%s created\n", config.FileName)
	} else {
		fmt.Fprintf(w, "%s already exists\n", config.FileName)
	}

	msgs, err := ensureGitignore(filepath.ToSlash(dbPath))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
