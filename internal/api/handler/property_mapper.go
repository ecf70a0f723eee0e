package handler

import (
	"github.com/luksua/API-Repaso/internal/core/domain"
	"github.com/luksua/API-Repaso/internal/core/ports"
)

func toCreateInput(req createPropertyRequest) ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		AreaM2:      req.AreaM2,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MonthlyRent: req.MonthlyRent,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	}
}

func toUpdateInput(req updatePropertyRequest) ports.UpdatePropertyInput {
	return ports.UpdatePropertyInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		AreaM2:      req.AreaM2,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MonthlyRent: req.MonthlyRent,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	}
}

func toPropertyResponse(p *domain.Property, owner *domain.PublicIdentity) propertyResponse {
	return propertyResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Type:        string(p.Type),
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		City:        p.City,
		AreaM2:      p.AreaM2,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		MonthlyRent: p.MonthlyRent,
		Status:      string(p.Status),
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		User:        owner,
	}
}

func toListResponse(details []ports.PropertyDetail) []propertyResponse {
	out := make([]propertyResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toPropertyResponse(d.Property, d.Owner))
	}
	return out
}

func toStatsResponse(s *domain.Stats) statsResponse {
	return statsResponse{
		Total:             s.Total,
		Disponibles:       s.Disponibles,
		Arrendadas:        s.Arrendadas,
		IngresosMensuales: s.IngresosMensuales,
	}
}
