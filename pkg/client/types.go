package client

import "time"

// User is the identity returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Property mirrors the property resource as served by the API.
type Property struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	AreaM2      *float64  `json:"area_m2"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       *User     `json:"user,omitempty"`
}

// PropertyInput carries the fields for property creation. Optional fields
// stay nil to omit them.
type PropertyInput struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	AreaM2      *float64 `json:"area_m2,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	MonthlyRent float64  `json:"monthly_rent"`
	Status      string   `json:"status,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// PropertyPatch is a sparse update payload: keys absent from the map are left
// untouched by the server, keys mapped to nil explicitly clear the field.
type PropertyPatch map[string]any

// Stats is the portfolio rollup for the acting user.
type Stats struct {
	Total             int64   `json:"total"`
	Disponibles       int64   `json:"disponibles"`
	Arrendadas        int64   `json:"arrendadas"`
	IngresosMensuales float64 `json:"ingresos_mensuales"`
}

// AuthResult is the response of login and register.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
