package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/soapnote/internal/db"
	"github.com/alexanderramin/soapnote/internal/domain"
)

// SQLiteBlockRepo implements BlockRepo on the merged_blocks table.
type SQLiteBlockRepo struct {
	db db.DBTX
}

func NewSQLiteBlockRepo(conn db.DBTX) *SQLiteBlockRepo {
	return &SQLiteBlockRepo{db: conn}
}

// Append allocates the next seq for the note in the same statement as the
// insert. Run it inside a UnitOfWork when several blocks must land together.
func (r *SQLiteBlockRepo) Append(ctx context.Context, note string, b domain.MergedBlock) (int, error) {
	query := `INSERT INTO merged_blocks (id, note, seq, template_label, scenario, s, o, a, p, created_at)
		SELECT ?, ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?, ?
		FROM merged_blocks WHERE note = ?
		RETURNING seq`
	var seq int
	err := r.db.QueryRowContext(ctx, query,
		b.ID, note, b.TemplateLabel, b.Scenario,
		b.Fields.S, b.Fields.O, b.Fields.A, b.Fields.P,
		formatTime(b.CreatedAt),
		note,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("inserting merged block: %w", err)
	}
	return seq, nil
}

func (r *SQLiteBlockRepo) List(ctx context.Context, note string) ([]domain.MergedBlock, error) {
	query := `SELECT id, template_label, scenario, s, o, a, p, created_at
		FROM merged_blocks WHERE note = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, note)
	if err != nil {
		return nil, fmt.Errorf("listing merged blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.MergedBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating merged blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteBlockRepo) GetByID(ctx context.Context, id string) (*domain.MergedBlock, error) {
	query := `SELECT id, template_label, scenario, s, o, a, p, created_at
		FROM merged_blocks WHERE id = ?`
	b, err := scanBlock(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("merged block %s: %w", id, ErrNotFound)
	}
	return b, err
}

// UpdateFields overwrites the note text of block id.
func (r *SQLiteBlockRepo) UpdateFields(ctx context.Context, id string, f domain.SoapFields) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE merged_blocks SET s = ?, o = ?, a = ?, p = ? WHERE id = ?`,
		f.S, f.O, f.A, f.P, id)
	if err != nil {
		return fmt.Errorf("updating merged block: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating merged block: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("merged block %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteBlockRepo) Clear(ctx context.Context, note string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM merged_blocks WHERE note = ?`, note)
	if err != nil {
		return 0, fmt.Errorf("clearing merged blocks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared blocks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteBlockRepo) Count(ctx context.Context, note string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM merged_blocks WHERE note = ?`, note).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting merged blocks: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (*domain.MergedBlock, error) {
	var (
		b         domain.MergedBlock
		createdAt string
	)
	err := row.Scan(&b.ID, &b.TemplateLabel, &b.Scenario, &b.Fields.S, &b.Fields.O, &b.Fields.A, &b.Fields.P, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning merged block: %w", err)
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &b, nil
}
