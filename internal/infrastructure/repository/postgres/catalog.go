package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/okulikov/docrag/internal/core/domain"
)

// Catalog is the relational inventory of indexed documents. It mirrors
// what the vector index holds but is the cheap source of truth for
// listings and reindex bookkeeping.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (c *Catalog) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	file_path TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	file_size BIGINT NOT NULL DEFAULT 0,
	file_type TEXT NOT NULL,
	department TEXT NOT NULL,
	page_count INTEGER NOT NULL DEFAULT 0,
	chunk_count INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	added_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_department ON documents(department);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// UpsertDocument records one document per corpus file, keyed by path.
// A re-run of the indexer refreshes counts and status in place while
// added_at keeps the first-seen time.
func (c *Catalog) UpsertDocument(ctx context.Context, rec domain.DocumentRecord) error {
	now := time.Now().UTC()
	addedAt := rec.AddedAt
	if addedAt.IsZero() {
		addedAt = now
	}

	_, err := c.db.ExecContext(ctx, `
INSERT INTO documents (
	file_path, filename, file_size, file_type, department, page_count, chunk_count, status, added_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (file_path) DO UPDATE SET
	filename = EXCLUDED.filename,
	file_size = EXCLUDED.file_size,
	file_type = EXCLUDED.file_type,
	department = EXCLUDED.department,
	page_count = EXCLUDED.page_count,
	chunk_count = EXCLUDED.chunk_count,
	status = EXCLUDED.status,
	updated_at = EXCLUDED.updated_at
`,
		rec.FilePath, rec.Filename, rec.FileSize, rec.FileType, rec.Department,
		rec.PageCount, rec.ChunkCount, string(rec.Status), addedAt, now,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (c *Catalog) ListDocuments(ctx context.Context, department string) ([]domain.DocumentRecord, error) {
	const baseQuery = `
SELECT file_path, filename, file_size, file_type, department, page_count, chunk_count, status, added_at, updated_at
FROM documents
`
	var (
		rows *sql.Rows
		err  error
	)
	if department != "" {
		rows, err = c.db.QueryContext(ctx, baseQuery+`WHERE department = $1 ORDER BY file_path`, department)
	} else {
		rows, err = c.db.QueryContext(ctx, baseQuery+`ORDER BY file_path`)
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []domain.DocumentRecord
	for rows.Next() {
		var (
			rec    domain.DocumentRecord
			status string
		)
		err := rows.Scan(
			&rec.FilePath, &rec.Filename, &rec.FileSize, &rec.FileType, &rec.Department,
			&rec.PageCount, &rec.ChunkCount, &status, &rec.AddedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec.Status = domain.DocumentStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return records, nil
}
