package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path      string
	Kind      string
	Title     string
	Date      string // daily only
	Week      string // daily and weekly
	Projects  []string
	Tags      []string
	Highlight bool
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

const rowColumns = `path, kind, title, date, week, projects, tags, highlight, checksum, updated_at`

// UpsertDocument inserts or replaces a document row and its FTS entry
// within a transaction.
func (db *DB) UpsertDocument(d DocumentRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	projectsJSON, _ := json.Marshal(emptySlice(d.Projects))
	tagsJSON, _ := json.Marshal(emptySlice(d.Tags))

	_, err = tx.Exec(`
		INSERT INTO documents (path, kind, title, date, week, projects, tags, highlight, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind       = excluded.kind,
			title      = excluded.title,
			date       = excluded.date,
			week       = excluded.week,
			projects   = excluded.projects,
			tags       = excluded.tags,
			highlight  = excluded.highlight,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, d.Path, d.Kind, d.Title, d.Date, d.Week, string(projectsJSON), string(tagsJSON),
		boolToInt(d.Highlight), d.Checksum, body, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Path, d.Title, body, d.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its FTS entry.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetDocument returns the row for path, or nil when it is not indexed.
func (db *DB) GetDocument(path string) (*DocumentRow, error) {
	row := db.conn.QueryRow(`SELECT `+rowColumns+` FROM documents WHERE path = ?`, path)
	d, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not indexed is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	return d, nil
}

// GetChecksum returns the stored checksum for a document, or empty string
// when it is not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed document keyed by path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListDocuments returns paginated documents, optionally filtered by kind.
// Dailies sort by date descending, weeklies by week descending, projects by
// title; the unfiltered listing sorts by last update.
func (db *DB) ListDocuments(kind string, limit, offset int) ([]DocumentRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if kind != "" {
		where = `WHERE kind = ?`
		args = append(args, kind)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	order := `ORDER BY updated_at DESC, path`
	switch kind {
	case "daily":
		order = `ORDER BY date DESC`
	case "weekly":
		order = `ORDER BY week DESC`
	case "project":
		order = `ORDER BY title COLLATE NOCASE`
	}

	args = append(args, limit, offset)
	rows, err := db.conn.Query(`SELECT `+rowColumns+` FROM documents `+where+` `+order+` LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DailiesForWeek returns every daily log of the given ISO week in
// chronological order.
func (db *DB) DailiesForWeek(week string) ([]DocumentRow, error) {
	rows, err := db.conn.Query(
		`SELECT `+rowColumns+` FROM documents WHERE kind = 'daily' AND week = ? ORDER BY date`, week)
	if err != nil {
		return nil, fmt.Errorf("index: dailies for week: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRows(rows *sql.Rows) ([]DocumentRow, error) {
	var out []DocumentRow
	for rows.Next() {
		d, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func scanRow(r rowScanner) (*DocumentRow, error) {
	var d DocumentRow
	var projectsJSON, tagsJSON string
	var highlight int
	if err := r.Scan(&d.Path, &d.Kind, &d.Title, &d.Date, &d.Week,
		&projectsJSON, &tagsJSON, &highlight, &d.Checksum, &d.UpdatedAt); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(projectsJSON), &d.Projects)
	_ = json.Unmarshal([]byte(tagsJSON), &d.Tags)
	d.Highlight = highlight != 0
	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
