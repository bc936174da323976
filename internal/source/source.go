// Package source loads grid model records from files and databases.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/five82/tablegrid/internal/model"
)

// Load reads a model record from a .json, .yaml or .yml file.
func Load(path string) (model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Record{}, fmt.Errorf("read model: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return model.DecodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return model.Record{}, fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}
}

func decodeYAML(data []byte) (model.Record, error) {
	var r model.Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return model.Record{}, fmt.Errorf("decode model: %w", err)
	}
	return r, nil
}

// SQLite runs query against the database at dbPath and returns the result
// as a model record. Column types come from the declared column types.
func SQLite(ctx context.Context, dbPath, query string) (model.Record, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return model.Record{}, fmt.Errorf("open database: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return model.Record{}, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return model.Record{}, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()
	return scanRecord(rows)
}

func scanRecord(rows *sql.Rows) (model.Record, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return model.Record{}, fmt.Errorf("read columns: %w", err)
	}
	rec := model.Record{
		ColumnNames: make([]any, len(colTypes)),
		Types:       make([]string, len(colTypes)),
		Values:      [][]any{},
	}
	for i, ct := range colTypes {
		rec.ColumnNames[i] = ct.Name()
		rec.Types[i] = typeForDecl(ct.DatabaseTypeName())
	}

	for rows.Next() {
		ptrs := make([]any, len(colTypes))
		for i := range ptrs {
			ptrs[i] = new(any)
		}
		if err := rows.Scan(ptrs...); err != nil {
			return model.Record{}, fmt.Errorf("scan row: %w", err)
		}
		line := make([]any, len(colTypes))
		for i := range line {
			v := *(ptrs[i].(*any))
			// the driver returns int64, float64, string, []byte, time.Time or nil
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			line[i] = v
		}
		rec.Values = append(rec.Values, line)
	}
	if err := rows.Err(); err != nil {
		return model.Record{}, fmt.Errorf("scan rows: %w", err)
	}
	inferUndeclared(rec, colTypes)
	return rec, nil
}

func typeForDecl(decl string) string {
	decl = strings.ToUpper(strings.TrimSpace(decl))
	if i := strings.IndexByte(decl, '('); i >= 0 {
		decl = strings.TrimSpace(decl[:i])
	}
	switch decl {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT":
		return "integer"
	case "REAL", "DOUBLE", "FLOAT", "NUMERIC", "DECIMAL":
		return "double"
	case "DATE", "DATETIME", "TIMESTAMP":
		return "datetime"
	case "BOOLEAN", "BOOL":
		return "boolean"
	}
	return "string"
}

// inferUndeclared types expression columns, which carry no declared type,
// from their first non-null value.
func inferUndeclared(rec model.Record, colTypes []*sql.ColumnType) {
	for i, ct := range colTypes {
		if ct.DatabaseTypeName() != "" {
			continue
		}
	rows:
		for _, line := range rec.Values {
			switch line[i].(type) {
			case nil:
				continue
			case int64:
				rec.Types[i] = "integer"
			case float64:
				rec.Types[i] = "double"
			}
			break rows
		}
	}
}
