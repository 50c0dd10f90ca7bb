package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
)

// RenderRepo stores the generation ledger.
type RenderRepo interface {
	Create(ctx context.Context, r *domain.RenderRecord) error
	GetByID(ctx context.Context, id string) (*domain.RenderRecord, error)
	List(ctx context.Context, limit int) ([]*domain.RenderRecord, error)
	ListByStatus(ctx context.Context, status domain.RenderStatus, limit int) ([]*domain.RenderRecord, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	KeepLatest(ctx context.Context, keep int) (int64, error)
}
