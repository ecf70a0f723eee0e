package domain

import "time"

// PropertyType enumerates the kinds of rental units the system manages.
type PropertyType string

const (
	TypeCasa        PropertyType = "casa"
	TypeApartamento PropertyType = "apartamento"
	TypeLocal       PropertyType = "local"
	TypeOficina     PropertyType = "oficina"
)

// PropertyStatus represents the rental state of a property.
type PropertyStatus string

const (
	StatusDisponible    PropertyStatus = "disponible"
	StatusArrendado     PropertyStatus = "arrendado"
	StatusMantenimiento PropertyStatus = "mantenimiento"
)

// ValidType reports whether t is one of the enumerated property types.
func ValidType(t PropertyType) bool {
	switch t {
	case TypeCasa, TypeApartamento, TypeLocal, TypeOficina:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the enumerated statuses.
// Any status may move to any other; there is no transition graph.
func ValidStatus(s PropertyStatus) bool {
	switch s {
	case StatusDisponible, StatusArrendado, StatusMantenimiento:
		return true
	}
	return false
}

// Property is the core aggregate root: a single rental unit.
// UserID is the owning user, stamped at creation and never changed.
type Property struct {
	ID          int64          `json:"id" bson:"_id"`
	UserID      int64          `json:"user_id" bson:"user_id"`
	Type        PropertyType   `json:"type" bson:"type"`
	Title       string         `json:"title" bson:"title"`
	Description *string        `json:"description" bson:"description,omitempty"`
	Address     string         `json:"address" bson:"address"`
	City        string         `json:"city" bson:"city"`
	AreaM2      *float64       `json:"area_m2" bson:"area_m2,omitempty"`
	Bedrooms    *int           `json:"bedrooms" bson:"bedrooms,omitempty"`
	Bathrooms   *int           `json:"bathrooms" bson:"bathrooms,omitempty"`
	MonthlyRent float64        `json:"monthly_rent" bson:"monthly_rent"`
	Status      PropertyStatus `json:"status" bson:"status"`
	ImageURL    *string        `json:"image_url" bson:"image_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// CanMutate is the single authorization rule for property mutation:
// only the owner may update or delete. Reads are not guarded.
func CanMutate(ownerID, actorID int64) bool {
	return ownerID == actorID
}

// Stats is the on-demand rollup over one user's property set.
// Field names follow the external contract of the stats endpoint.
type Stats struct {
	Total             int64   `json:"total"`
	Disponibles       int64   `json:"disponibles"`
	Arrendadas        int64   `json:"arrendadas"`
	IngresosMensuales float64 `json:"ingresos_mensuales"`
}
