package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftskel/internal/config"
)

func generateFeatureFile(name string, scenarioCount int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Feature: %s\n", name)
	buf.WriteString("  Background:\n")
	buf.WriteString("    Given the system is running\n\n")
	for i := 1; i <= scenarioCount; i++ {
		if i%5 == 0 {
			fmt.Fprintf(&buf, "  @outline\n  Scenario Outline: %s outline %d\n", name, i)
			fmt.Fprintf(&buf, "    Given \"<user>\" has %d items\n", i)
			buf.WriteString("    Examples:\n")
			buf.WriteString("      | user  | count |\n")
			buf.WriteString("      | alice | 1     |\n")
			buf.WriteString("      | bob   | 2     |\n\n")
			continue
		}
		fmt.Fprintf(&buf, "  Scenario: %s scenario %d\n", name, i)
		fmt.Fprintf(&buf, "    Given precondition %d\n", i)
		fmt.Fprintf(&buf, "    When action \"step-%d\" is taken\n", i)
		fmt.Fprintf(&buf, "    Then result %d is observed\n\n", i)
	}
	return buf.String()
}

func setupBenchProject(b *testing.B, fileCount, scenariosPerFile int) {
	b.Helper()
	dir := b.TempDir()
	orig, err := os.Getwd()
	require.NoError(b, err)
	require.NoError(b, os.Chdir(dir))
	b.Cleanup(func() { os.Chdir(orig) })

	var buf bytes.Buffer
	require.NoError(b, RunInit(context.Background(), &buf, config.Default()))
	writeBenchFeatures(b, fileCount, scenariosPerFile)

	buf.Reset()
	require.NoError(b, RunSync(context.Background(), &buf, config.Default()))
}

func writeBenchFeatures(b *testing.B, fileCount, scenariosPerFile int) {
	b.Helper()
	for i := 0; i < fileCount; i++ {
		name := fmt.Sprintf("feature_%d", i)
		content := generateFeatureFile(name, scenariosPerFile)
		require.NoError(b, os.WriteFile(filepath.Join("features", name+".feature"), []byte(content), 0o644))
	}
}

func benchmarkIncremental(b *testing.B, fileCount, scenariosPerFile int) {
	setupBenchProject(b, fileCount, scenariosPerFile)
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunSync(context.Background(), &buf, config.Default()))
	}
}

func benchmarkFirstSync(b *testing.B, fileCount, scenariosPerFile int) {
	orig, err := os.Getwd()
	require.NoError(b, err)
	defer os.Chdir(orig)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		require.NoError(b, os.Chdir(b.TempDir()))
		var buf bytes.Buffer
		require.NoError(b, RunInit(context.Background(), &buf, config.Default()))
		writeBenchFeatures(b, fileCount, scenariosPerFile)

		buf.Reset()
		b.StartTimer()
		require.NoError(b, RunSync(context.Background(), &buf, config.Default()))
	}
}

// BenchmarkSync_Incremental_Small: 5 files, 10 scenarios each, no changes
func BenchmarkSync_Incremental_Small(b *testing.B) { benchmarkIncremental(b, 5, 10) }

// BenchmarkSync_Incremental_Medium: 20 files, 20 scenarios each, no changes
func BenchmarkSync_Incremental_Medium(b *testing.B) { benchmarkIncremental(b, 20, 20) }

// BenchmarkSync_Incremental_Large: 50 files, 50 scenarios each, no changes
func BenchmarkSync_Incremental_Large(b *testing.B) { benchmarkIncremental(b, 50, 50) }

// BenchmarkSync_FirstSync_Small: initial sync of 5 files, 10 scenarios each
func BenchmarkSync_FirstSync_Small(b *testing.B) { benchmarkFirstSync(b, 5, 10) }

// BenchmarkSync_FirstSync_Large: initial sync of 50 files, 50 scenarios each
func BenchmarkSync_FirstSync_Large(b *testing.B) { benchmarkFirstSync(b, 50, 50) }
