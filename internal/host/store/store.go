// Package store persists host documents in SQLite. Symbols and element
// records are kept as JSON columns; a loaded document is rebuilt with its
// original element ids.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"formwork/internal/host/memhost"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// ============================================================
// SQLite Repository
// ============================================================

// DocumentInfo summarises a stored document.
type DocumentInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Elements  int    `json:"elements"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations in name order.
func (r *Repository) Init(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, e := range entries {
		data, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Save inserts doc under its id or replaces the stored copy.
func (r *Repository) Save(ctx context.Context, name string, doc *memhost.Document) error {
	symbols, err := json.Marshal(doc.SymbolRecords())
	if err != nil {
		return fmt.Errorf("encode symbols: %w", err)
	}
	records := doc.Records()
	elements, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode elements: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO documents (id, name, symbols, elements, element_count)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            symbols = excluded.symbols,
            elements = excluded.elements,
            element_count = excluded.element_count,
            updated_at = datetime('now')
    `, doc.ID(), name, string(symbols), string(elements), len(records))
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID(), err)
	}
	return nil
}

// Load rebuilds the document stored under id.
func (r *Repository) Load(ctx context.Context, id string) (*memhost.Document, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT symbols, elements
        FROM documents
        WHERE id = ?
    `, id)

	var symbolsJSON, elementsJSON string
	if err := row.Scan(&symbolsJSON, &elementsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var symbols []memhost.SymbolRecord
	if err := json.Unmarshal([]byte(symbolsJSON), &symbols); err != nil {
		return nil, fmt.Errorf("decode symbols of %s: %w", id, err)
	}
	var records []memhost.ElementRecord
	if err := json.Unmarshal([]byte(elementsJSON), &records); err != nil {
		return nil, fmt.Errorf("decode elements of %s: %w", id, err)
	}
	doc, err := memhost.Restore(id, symbols, records)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	return doc, nil
}

// List returns every stored document, most recently updated first.
func (r *Repository) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, element_count, created_at, updated_at
        FROM documents
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		if err := rows.Scan(&d.ID, &d.Name, &d.Elements, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes the document stored under id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
