package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/bfmp/internal/db"
	"github.com/alexanderramin/bfmp/internal/domain"
)

// SQLiteRenderRepo implements RenderRepo on the renders table.
type SQLiteRenderRepo struct {
	db db.DBTX
}

// NewSQLiteRenderRepo creates a new SQLiteRenderRepo.
func NewSQLiteRenderRepo(conn db.DBTX) *SQLiteRenderRepo {
	return &SQLiteRenderRepo{db: conn}
}

var _ RenderRepo = (*SQLiteRenderRepo)(nil)

const renderColumns = `id, created_at, target, plan_format, output_path, output_bytes, digest, missing_sections, status, duration_ms`

func (r *SQLiteRenderRepo) Create(ctx context.Context, rec *domain.RenderRecord) error {
	query := `INSERT INTO renders (` + renderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.UTC().Format(timeLayout),
		string(rec.Target),
		string(rec.Format),
		rec.OutputPath,
		rec.OutputBytes,
		rec.Digest,
		joinList(rec.MissingSections),
		string(rec.Status),
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting render record: %w", err)
	}
	return nil
}

func (r *SQLiteRenderRepo) GetByID(ctx context.Context, id string) (*domain.RenderRecord, error) {
	query := `SELECT ` + renderColumns + ` FROM renders WHERE id = ?`
	rec, err := scanRender(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("render record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning render record: %w", err)
	}
	return rec, nil
}

// List returns the newest records first.
func (r *SQLiteRenderRepo) List(ctx context.Context, limit int) ([]*domain.RenderRecord, error) {
	query := `SELECT ` + renderColumns + ` FROM renders ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing render records: %w", err)
	}
	defer rows.Close()
	return scanRenders(rows)
}

func (r *SQLiteRenderRepo) ListByStatus(ctx context.Context, status domain.RenderStatus, limit int) ([]*domain.RenderRecord, error) {
	query := `SELECT ` + renderColumns + ` FROM renders WHERE status = ? ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, string(status), normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing render records by status: %w", err)
	}
	defer rows.Close()
	return scanRenders(rows)
}

// DeleteBefore prunes records created before cutoff and reports how many
// were removed.
func (r *SQLiteRenderRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM renders WHERE created_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning render records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned render records: %w", err)
	}
	return n, nil
}

// KeepLatest removes every record except the keep most recent ones.
func (r *SQLiteRenderRepo) KeepLatest(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM renders WHERE id NOT IN (
			SELECT id FROM renders ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming render records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting trimmed render records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRender(row rowScanner) (*domain.RenderRecord, error) {
	var (
		rec                               domain.RenderRecord
		createdAt, target, format, status string
		missing                           string
		durationMs                        int64
	)
	err := row.Scan(
		&rec.ID, &createdAt, &target, &format, &rec.OutputPath, &rec.OutputBytes,
		&rec.Digest, &missing, &status, &durationMs,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rec.Target = domain.RenderTarget(target)
	rec.Format = domain.PlanFormat(format)
	rec.Status = domain.RenderStatus(status)
	rec.MissingSections = splitList(missing)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}

func scanRenders(rows *sql.Rows) ([]*domain.RenderRecord, error) {
	var out []*domain.RenderRecord
	for rows.Next() {
		rec, err := scanRender(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning render row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating render records: %w", err)
	}
	return out, nil
}
