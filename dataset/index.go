package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Index mirrors label records into a SQLite database so large corpora can
// be sliced with SQL instead of loading whole manifests. The schema
// carries the same columns as the JSON records, keyed by
// (difficulty, image_id), and inserts are upserts: re-running a batch
// over the same ids refreshes rows instead of duplicating them.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (creating if needed) the index database at dbPath.
func OpenIndex(dbPath string) (*Index, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("dataset: create index dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("dataset: open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (x *Index) migrate() error {
	_, err := x.db.Exec(`
        CREATE TABLE IF NOT EXISTS labels (
            difficulty     TEXT    NOT NULL,
            image_id       TEXT    NOT NULL,
            captcha_string TEXT    NOT NULL,
            filename       TEXT    NOT NULL,
            width          INTEGER NOT NULL,
            height         INTEGER NOT NULL,
            PRIMARY KEY (difficulty, image_id)
        )
    `)
	if err != nil {
		return fmt.Errorf("dataset: migrate index: %w", err)
	}
	return nil
}

// InsertBatch stores records in one transaction.
func (x *Index) InsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dataset: begin insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR REPLACE INTO labels
            (difficulty, image_id, captcha_string, filename, width, height)
        VALUES (?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("dataset: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Difficulty, r.ImageID, r.CaptchaString, r.Filename, r.Width, r.Height); err != nil {
			return fmt.Errorf("dataset: insert %s/%s: %w", r.Difficulty, r.ImageID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dataset: commit insert: %w", err)
	}
	return nil
}

// ByDifficulty returns all records for one tier, ordered by image id.
func (x *Index) ByDifficulty(ctx context.Context, difficulty string) ([]Record, error) {
	rows, err := x.db.QueryContext(ctx, `
        SELECT height, width, image_id, captcha_string, filename, difficulty
        FROM labels
        WHERE difficulty = ?
        ORDER BY image_id
    `, difficulty)
	if err != nil {
		return nil, fmt.Errorf("dataset: query %s: %w", difficulty, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Height, &r.Width, &r.ImageID, &r.CaptchaString, &r.Filename, &r.Difficulty); err != nil {
			return nil, fmt.Errorf("dataset: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset: iterate: %w", err)
	}
	return out, nil
}

// Count returns the number of indexed records for one tier.
func (x *Index) Count(ctx context.Context, difficulty string) (int, error) {
	var n int
	err := x.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM labels WHERE difficulty = ?`, difficulty).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dataset: count %s: %w", difficulty, err)
	}
	return n, nil
}

// Close releases the database handle.
func (x *Index) Close() error {
	return x.db.Close()
}
