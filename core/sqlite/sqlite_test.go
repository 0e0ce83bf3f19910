package sqlite

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gerrors "github.com/FocuswithJustin/JuniperGloss/core/errors"
)

func TestDriver(t *testing.T) {
	switch DriverType() {
	case "purego":
		if DriverName() != "sqlite" {
			t.Errorf("purego DriverName = %q", DriverName())
		}
	case "cgo":
		if DriverName() != "sqlite3" {
			t.Errorf("cgo DriverName = %q", DriverName())
		}
	default:
		t.Errorf("unknown DriverType %q", DriverType())
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		readOnly bool
		want     []string
		notWant  []string
	}{
		{
			name:    "read-write",
			path:    "/tmp/lexicon.db",
			want:    []string{"file:/tmp/lexicon.db?", "1500"},
			notWant: []string{"mode=ro"},
		},
		{
			name:     "read-only",
			path:     "lexicon.db",
			readOnly: true,
			want:     []string{"file:lexicon.db?", "&mode=ro"},
		},
		{
			name:    "escaped path",
			path:    "/tmp/a?b#c%d.db",
			want:    []string{"file:/tmp/a%3fb%23c%25d.db?"},
			notWant: []string{"a?b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := DSN(tt.path, tt.readOnly, 1500*time.Millisecond)
			for _, s := range tt.want {
				if !strings.Contains(dsn, s) {
					t.Errorf("DSN = %q, missing %q", dsn, s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(dsn, s) {
					t.Errorf("DSN = %q, should not contain %q", dsn, s)
				}
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath, BusyTimeout(time.Second))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE test (id INTEGER PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO test (value) VALUES (?)`, "#nyumba#"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	ro, err := OpenReadOnly(dbPath)
	if err != nil {
		t.Fatalf("failed to open read-only: %v", err)
	}
	defer ro.Close()

	var value string
	if err := ro.QueryRow(`SELECT value FROM test WHERE id = 1`).Scan(&value); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if value != "#nyumba#" {
		t.Errorf("value = %q, want %q", value, "#nyumba#")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, gerrors.ErrInvalidInput) {
		t.Errorf("Open(\"\") error = %v, want invalid input", err)
	}
}
