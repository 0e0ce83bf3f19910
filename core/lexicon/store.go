package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
	"github.com/FocuswithJustin/JuniperGloss/core/sqlite"
)

// Metadata is free-form provenance stored next to a saved lexicon.
type Metadata map[string]string

const schema = `
CREATE TABLE IF NOT EXISTS lexicon (
	target TEXT PRIMARY KEY,
	score  REAL NOT NULL,
	source TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Save writes lex and meta to db in one transaction, replacing any lexicon
// already stored there. An "entries" metadata key is always written.
func Save(ctx context.Context, db *sql.DB, lex *Lexicon, meta Metadata) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create lexicon schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lexicon`); err != nil {
		return errors.Wrap(err, "clear lexicon")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return errors.Wrap(err, "clear metadata")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lexicon (target, score, source) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, target := range lex.Targets() {
		e := lex.entries[target]
		if _, err := stmt.ExecContext(ctx, target, e.Score, e.Source); err != nil {
			return errors.Wrapf(err, "insert entry %q", target)
		}
	}

	meta = withEntries(meta, lex.Len())
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, k, v); err != nil {
			return errors.Wrapf(err, "insert metadata %q", k)
		}
	}

	return tx.Commit()
}

// Load reads a lexicon and its metadata from db.
func Load(ctx context.Context, db *sql.DB) (*Lexicon, Metadata, error) {
	rows, err := db.QueryContext(ctx, `SELECT target, score, source FROM lexicon`)
	if err != nil {
		return nil, nil, errors.Wrap(err, "query lexicon")
	}
	defer rows.Close()

	lex := New()
	for rows.Next() {
		var (
			target string
			e      Entry
		)
		if err := rows.Scan(&target, &e.Score, &e.Source); err != nil {
			return nil, nil, errors.Wrap(err, "scan lexicon entry")
		}
		if e.Score <= 0 {
			return nil, nil, &errors.ValidationError{
				Field:   "score",
				Message: fmt.Sprintf("entry %q has non-positive score %v", target, e.Score),
			}
		}
		lex.entries[target] = e
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "read lexicon")
	}

	meta := Metadata{}
	mrows, err := db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, nil, errors.Wrap(err, "query metadata")
	}
	defer mrows.Close()
	for mrows.Next() {
		var k, v string
		if err := mrows.Scan(&k, &v); err != nil {
			return nil, nil, errors.Wrap(err, "scan metadata")
		}
		meta[k] = v
	}
	if err := mrows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "read metadata")
	}

	return lex, meta, nil
}

// SaveFile saves lex to a SQLite database file, creating it if needed.
func SaveFile(ctx context.Context, path string, lex *Lexicon, meta Metadata) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return Save(ctx, db, lex, meta)
}

// LoadFile loads a lexicon from an existing SQLite database file.
func LoadFile(ctx context.Context, path string) (*Lexicon, Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.NewIO("open lexicon database", path, err)
	}
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()
	return Load(ctx, db)
}

func withEntries(meta Metadata, n int) Metadata {
	out := make(Metadata, len(meta)+1)
	for k, v := range meta {
		out[k] = v
	}
	out["entries"] = strconv.Itoa(n)
	return out
}
