package ports

import (
	"context"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	Insert(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	// Save replaces the stored document for p.ID (last-write-wins).
	Save(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
	// ListNewestFirst returns every property ordered by creation time,
	// newest first. Reads are not ownership-scoped.
	ListNewestFirst(ctx context.Context) ([]*domain.Property, error)
	// AggregateStats computes the per-status rollup for one owner directly
	// from the current record set.
	AggregateStats(ctx context.Context, ownerID int64) (*domain.Stats, error)
}
