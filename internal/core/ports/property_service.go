package ports

import (
	"context"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

// CreatePropertyInput carries all data needed to create a new property.
// The acting user becomes the owner.
type CreatePropertyInput struct {
	Type        string
	Title       string
	Description *string
	Address     string
	City        string
	AreaM2      *float64
	Bedrooms    *int
	Bathrooms   *int
	MonthlyRent float64
	// Status defaults to disponible when empty.
	Status   string
	ImageURL *string
}

// UpdatePropertyInput is a sparse update payload: only Present fields are
// applied, and Present-but-null clears nullable fields.
type UpdatePropertyInput struct {
	Type        Optional[string]
	Title       Optional[string]
	Description Optional[string]
	Address     Optional[string]
	City        Optional[string]
	AreaM2      Optional[float64]
	Bedrooms    Optional[int]
	Bathrooms   Optional[int]
	MonthlyRent Optional[float64]
	Status      Optional[string]
	ImageURL    Optional[string]
}

// PropertyDetail is a property joined with its owner's public identity.
// Owner may be nil when the owning user no longer resolves.
type PropertyDetail struct {
	Property *domain.Property
	Owner    *domain.PublicIdentity
}

// PropertyService defines use-case operations for properties.
// Mutations enforce the ownership guard; reads require only a valid session.
type PropertyService interface {
	List(ctx context.Context) ([]PropertyDetail, error)
	Create(ctx context.Context, input CreatePropertyInput, actorID int64) (*domain.Property, error)
	Get(ctx context.Context, id int64) (*PropertyDetail, error)
	Update(ctx context.Context, id int64, input UpdatePropertyInput, actorID int64) (*domain.Property, error)
	Delete(ctx context.Context, id int64, actorID int64) error
	Stats(ctx context.Context, actorID int64) (*domain.Stats, error)
}
