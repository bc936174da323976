package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/tablegrid/internal/model"
)

const fruitsJSON = `{
  "columnNames": ["name", "qty"],
  "types": ["string", "integer"],
  "values": [["apple", 3], ["pear", 1], ["plum", 2]]
}`

func TestRunDumpsTable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "fruits.json")
	if err := os.WriteFile(path, []byte(fruitsJSON), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		PrefsPath:  filepath.Join(home, "prefs.toml"),
		ModelPath:  path,
		Dump:       true,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"name", "qty", "apple", "pear", "plum"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("dump missing %q:\n%s", want, out.String())
		}
	}
	if _, err := os.Stat(filepath.Join(home, ".local", "share", "tablegrid", "logs", "tablegrid.log")); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestRunWithoutSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		Dump:       true,
	})
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("Run() error = %v, want ErrNoSource", err)
	}
}

func TestRunRejectsBadModel(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "model.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		ModelPath:  path,
		Dump:       true,
	})
	if err == nil || !strings.Contains(err.Error(), "load model") {
		t.Fatalf("Run() error = %v, want a load model error", err)
	}
}

func TestSQLiteNeedsQuery(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		SQLitePath: filepath.Join(home, "db.sqlite"),
		Dump:       true,
	})
	if err == nil || !strings.Contains(err.Error(), "--query") {
		t.Fatalf("Run() error = %v, want a missing query error", err)
	}
}

func TestSameColumns(t *testing.T) {
	a := model.Record{ColumnNames: []any{"a", "b"}, Types: []string{"string", "double"}}
	tests := []struct {
		name string
		b    model.Record
		want bool
	}{
		{"same", model.Record{ColumnNames: []any{"a", "b"}, Types: []string{"string", "double"}}, true},
		{"renamed", model.Record{ColumnNames: []any{"a", "c"}, Types: []string{"string", "double"}}, false},
		{"retyped", model.Record{ColumnNames: []any{"a", "b"}, Types: []string{"string", "integer"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameColumns(a, tt.b); got != tt.want {
				t.Fatalf("sameColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}
