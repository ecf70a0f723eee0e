package handler

import (
	"time"

	"github.com/luksua/API-Repaso/internal/core/domain"
	"github.com/luksua/API-Repaso/internal/core/ports"
)

// createPropertyRequest carries the full field set for property creation.
// Field rules live in the service layer; the schema only shapes the JSON.
type createPropertyRequest struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	AreaM2      *float64 `json:"area_m2"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	MonthlyRent float64  `json:"monthly_rent"`
	Status      string   `json:"status"`
	ImageURL    *string  `json:"image_url"`
}

// updatePropertyRequest is the sparse update payload. Optional distinguishes
// absent fields from explicit nulls so partial updates leave omitted fields
// untouched while nulls clear them.
type updatePropertyRequest struct {
	Type        ports.Optional[string]  `json:"type"`
	Title       ports.Optional[string]  `json:"title"`
	Description ports.Optional[string]  `json:"description"`
	Address     ports.Optional[string]  `json:"address"`
	City        ports.Optional[string]  `json:"city"`
	AreaM2      ports.Optional[float64] `json:"area_m2"`
	Bedrooms    ports.Optional[int]     `json:"bedrooms"`
	Bathrooms   ports.Optional[int]     `json:"bathrooms"`
	MonthlyRent ports.Optional[float64] `json:"monthly_rent"`
	Status      ports.Optional[string]  `json:"status"`
	ImageURL    ports.Optional[string]  `json:"image_url"`
}

// propertyResponse is the transport view of a property. Owner is included on
// reads (list/get); it is omitted from mutation responses, matching the
// original API contract.
type propertyResponse struct {
	ID          int64                  `json:"id"`
	UserID      int64                  `json:"user_id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Address     string                 `json:"address"`
	City        string                 `json:"city"`
	AreaM2      *float64               `json:"area_m2"`
	Bedrooms    *int                   `json:"bedrooms"`
	Bathrooms   *int                   `json:"bathrooms"`
	MonthlyRent float64                `json:"monthly_rent"`
	Status      string                 `json:"status"`
	ImageURL    *string                `json:"image_url"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	User        *domain.PublicIdentity `json:"user,omitempty"`
}

type statsResponse struct {
	Total             int64   `json:"total"`
	Disponibles       int64   `json:"disponibles"`
	Arrendadas        int64   `json:"arrendadas"`
	IngresosMensuales float64 `json:"ingresos_mensuales"`
}

type messageResponse struct {
	Message string `json:"message"`
}
