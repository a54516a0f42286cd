package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/soapnote/internal/db"
	"github.com/alexanderramin/soapnote/internal/domain"
)

// SQLiteGenerationLogRepo implements GenerationLogRepo.
type SQLiteGenerationLogRepo struct {
	db db.DBTX
}

func NewSQLiteGenerationLogRepo(conn db.DBTX) *SQLiteGenerationLogRepo {
	return &SQLiteGenerationLogRepo{db: conn}
}

func (r *SQLiteGenerationLogRepo) Create(ctx context.Context, e domain.GenerationLogEntry) error {
	query := `INSERT INTO generation_log (id, note, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Note, e.Action, e.Details, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting generation log entry: %w", err)
	}
	return nil
}

func (r *SQLiteGenerationLogRepo) ListRecent(ctx context.Context, note string, limit int) ([]domain.GenerationLogEntry, error) {
	query := `SELECT id, note, action, details, created_at
		FROM generation_log
		WHERE (? = '' OR note = ?)
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, note, note, limit)
	if err != nil {
		return nil, fmt.Errorf("listing generation log: %w", err)
	}
	defer rows.Close()

	var out []domain.GenerationLogEntry
	for rows.Next() {
		var (
			e         domain.GenerationLogEntry
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Note, &e.Action, &e.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning generation log entry: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation log: %w", err)
	}
	return out, nil
}
