package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chriserin/ftskel/internal/parser"
)

// Checksum returns the stored content checksum for path. ok is false when the
// file has never been registered.
func Checksum(ctx context.Context, sqlDB *sql.DB, path string) (sum string, ok bool, err error) {
	err = sqlDB.QueryRowContext(ctx, `SELECT checksum FROM files WHERE file_path = ?`, path).Scan(&sum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying %s: %w", path, err)
	}
	return sum, true, nil
}

// SaveFile upserts the file row and replaces its scenarios in one transaction.
func SaveFile(ctx context.Context, sqlDB *sql.DB, pf *parser.ParsedFile, checksum, outputPath string) (int64, error) {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning save of %s: %w", pf.Path, err)
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO files (file_path, feature_name, checksum, output_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			feature_name = excluded.feature_name,
			checksum     = excluded.checksum,
			output_path  = excluded.output_path,
			updated_at   = datetime('now')
		RETURNING id
	`, pf.Path, pf.Name, checksum, outputPath).Scan(&fileID)
	if err != nil {
		return 0, fmt.Errorf("upserting %s: %w", pf.Path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE file_id = ?`, fileID); err != nil {
		return 0, fmt.Errorf("clearing scenarios of %s: %w", pf.Path, err)
	}

	for i, sc := range pf.Scenarios {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO scenarios (file_id, position, name, kind, tags, steps, examples)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, fileID, i, sc.Name, string(sc.Kind), sc.TagString(), sc.Steps, sc.Examples)
		if err != nil {
			return 0, fmt.Errorf("inserting scenario %q: %w", sc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s: %w", pf.Path, err)
	}
	return fileID, nil
}

// Files returns every registered feature file path in sorted order.
func Files(ctx context.Context, sqlDB *sql.DB) ([]string, error) {
	rows, err := sqlDB.QueryContext(ctx, `SELECT file_path FROM files ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return paths, nil
}

// Prune removes registered files whose path is not in keep and returns their paths.
func Prune(ctx context.Context, sqlDB *sql.DB, keep []string) ([]string, error) {
	paths, err := Files(ctx, sqlDB)
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, path := range paths {
		if slices.Contains(keep, path) {
			continue
		}
		if _, err := sqlDB.ExecContext(ctx, `DELETE FROM files WHERE file_path = ?`, path); err != nil {
			return nil, fmt.Errorf("removing %s: %w", path, err)
		}
		stale = append(stale, path)
	}
	return stale, nil
}

// KindCount is the number of registered scenarios of one kind.
type KindCount struct {
	Kind  string
	Count int
}

// CountByKind returns scenario counts per kind, largest first.
func CountByKind(ctx context.Context, sqlDB *sql.DB) ([]KindCount, error) {
	rows, err := sqlDB.QueryContext(ctx, `
		SELECT kind, COUNT(*) AS cnt
		FROM scenarios
		GROUP BY kind
		ORDER BY cnt DESC, kind
	`)
	if err != nil {
		return nil, fmt.Errorf("querying kind counts: %w", err)
	}
	defer rows.Close()

	var counts []KindCount
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("scanning kind row: %w", err)
		}
		counts = append(counts, kc)
	}
	return counts, rows.Err()
}

// ScenarioRow is one registered scenario joined with its file.
type ScenarioRow struct {
	FilePath    string
	FeatureName string
	Name        string
	Kind        string
	Tags        []string
	Steps       int
	Examples    int
}

// ListScenarios returns registered scenarios in file then declaration order.
// Empty kind or tag means no filter.
func ListScenarios(ctx context.Context, sqlDB *sql.DB, kind, tag string) ([]ScenarioRow, error) {
	rows, err := sqlDB.QueryContext(ctx, `
		SELECT f.file_path, f.feature_name, s.name, s.kind, s.tags, s.steps, s.examples
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []ScenarioRow
	for rows.Next() {
		var r ScenarioRow
		var tags string
		if err := rows.Scan(&r.FilePath, &r.FeatureName, &r.Name, &r.Kind, &tags, &r.Steps, &r.Examples); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Tags = strings.Fields(tags)

		if kind != "" && r.Kind != kind {
			continue
		}
		if tag != "" && !slices.Contains(r.Tags, tag) {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}
