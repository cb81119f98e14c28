package index

import (
	"log/slog"
	"time"

	"github.com/mkraev/worklog/internal/checksum"
	"github.com/mkraev/worklog/internal/document"
	"github.com/mkraev/worklog/internal/storage"
)

// Sync walks the workspace and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Files that fail to parse as work records are skipped with a warning; a
// workspace may hold unrelated Markdown.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	infos, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		disk[info.Path] = struct{}{}

		if checksums[info.Path] == info.Checksum {
			continue
		}

		data, err := store.Read(info.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", info.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, info.Path, data); err != nil {
			logger.Warn("sync: skipped", slog.String("path", info.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", info.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data as a work record and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}
	return db.UpsertDocument(RowFromDocument(path, doc, checksum.Sum(data)), doc.Body)
}

// RowFromDocument projects a parsed document into its index row.
func RowFromDocument(path string, doc *document.Document, cs string) DocumentRow {
	row := DocumentRow{
		Path:      path,
		Kind:      string(doc.Kind),
		Title:     doc.Title(),
		Checksum:  cs,
		Projects:  []string{},
		Tags:      []string{},
		UpdatedAt: time.Now(),
	}
	switch doc.Kind {
	case document.KindDaily:
		row.Date = doc.Daily.Date
		row.Week = doc.Daily.Week
		row.Projects = doc.Daily.Projects
		row.Tags = doc.Daily.Tags
		row.Highlight = doc.Daily.Highlight
	case document.KindWeekly:
		row.Week = doc.Weekly.Week
		row.Projects = doc.Weekly.Projects
	}
	return row
}
