package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// BlockRepo stores held note snapshots, one ordered list per note name.
type BlockRepo interface {
	// Append stores b after the note's last block and returns its position.
	Append(ctx context.Context, note string, b domain.MergedBlock) (int, error)
	List(ctx context.Context, note string) ([]domain.MergedBlock, error)
	GetByID(ctx context.Context, id string) (*domain.MergedBlock, error)
	UpdateFields(ctx context.Context, id string, f domain.SoapFields) error
	// Clear removes every block of the note and reports how many went.
	Clear(ctx context.Context, note string) (int, error)
	Count(ctx context.Context, note string) (int, error)
}

// GenerationLogRepo stores the action log.
type GenerationLogRepo interface {
	Create(ctx context.Context, e domain.GenerationLogEntry) error
	// ListRecent returns up to limit entries, newest first. Empty note lists
	// every note.
	ListRecent(ctx context.Context, note string, limit int) ([]domain.GenerationLogEntry, error)
}
