package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/luksua/API-Repaso/internal/core/domain"
	"github.com/luksua/API-Repaso/internal/core/ports"
)

// PropertyService implements CRUD, field validation, the ownership guard and
// the stats rollup over property records.
type PropertyService struct {
	repo   ports.PropertyRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, users ports.UserRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, users: users, logger: logger}
}

// List returns every property, owner identity joined, newest first.
// Reads are not ownership-scoped.
func (s *PropertyService) List(ctx context.Context) ([]ports.PropertyDetail, error) {
	props, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(props))
	seen := make(map[int64]struct{}, len(props))
	for _, p := range props {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			ids = append(ids, p.UserID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]ports.PropertyDetail, 0, len(props))
	for _, p := range props {
		details = append(details, ports.PropertyDetail{Property: p, Owner: publicOwner(owners[p.UserID])})
	}
	return details, nil
}

// Create validates the input, stamps the acting user as owner and persists a
// new record. The owner is never taken from the payload.
func (s *PropertyService) Create(ctx context.Context, input ports.CreatePropertyInput, actorID int64) (*domain.Property, error) {
	if verr := validateCreate(input); verr != nil {
		return nil, verr
	}

	status := domain.PropertyStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusDisponible
	}

	now := time.Now().UTC()
	p := &domain.Property{
		UserID:      actorID,
		Type:        domain.PropertyType(input.Type),
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		AreaM2:      input.AreaM2,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		MonthlyRent: input.MonthlyRent,
		Status:      status,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}

	s.logger.Info().Int64("property_id", p.ID).Int64("user_id", actorID).Str("type", input.Type).Msg("property created")
	return p, nil
}

// Get returns one property with its owner joined, or not-found.
func (s *PropertyService) Get(ctx context.Context, id int64) (*ports.PropertyDetail, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owners, err := s.users.FindByIDs(ctx, []int64{p.UserID})
	if err != nil {
		return nil, err
	}
	return &ports.PropertyDetail{Property: p, Owner: publicOwner(owners[p.UserID])}, nil
}

// Update loads the record, runs the ownership guard, applies only the fields
// present in the input and persists the result. Explicit nulls clear
// nullable fields; the guard runs before any change is applied.
func (s *PropertyService) Update(ctx context.Context, id int64, input ports.UpdatePropertyInput, actorID int64) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(p.UserID, actorID) {
		s.logger.Warn().Int64("property_id", id).Int64("owner_id", p.UserID).Int64("actor_id", actorID).Msg("update denied")
		return nil, domain.ErrNotOwner
	}

	if verr := applyUpdate(p, input); verr != nil {
		return nil, verr
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("property_id", id).Msg("failed to update property")
		return nil, err
	}

	s.logger.Info().Int64("property_id", id).Int64("user_id", actorID).Msg("property updated")
	return p, nil
}

// Delete removes the record permanently after the ownership guard passes.
func (s *PropertyService) Delete(ctx context.Context, id int64, actorID int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanMutate(p.UserID, actorID) {
		s.logger.Warn().Int64("property_id", id).Int64("owner_id", p.UserID).Int64("actor_id", actorID).Msg("delete denied")
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("property_id", id).Msg("failed to delete property")
		return err
	}

	s.logger.Info().Int64("property_id", id).Int64("user_id", actorID).Msg("property deleted")
	return nil
}

// Stats computes the rollup fresh from the current record set; nothing is
// cached between calls.
func (s *PropertyService) Stats(ctx context.Context, actorID int64) (*domain.Stats, error) {
	return s.repo.AggregateStats(ctx, actorID)
}

func publicOwner(u *domain.User) *domain.PublicIdentity {
	if u == nil {
		return nil
	}
	pub := u.Public()
	return &pub
}

// ---------------------------------------------------------------------------
// Field validation
// ---------------------------------------------------------------------------

func validateCreate(in ports.CreatePropertyInput) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if in.Type == "" {
		verr.Add("type", "type is required")
	} else if !domain.ValidType(domain.PropertyType(in.Type)) {
		verr.Add("type", "type must be one of: casa, apartamento, local, oficina")
	}

	checkText(verr, "title", in.Title, 255)
	checkText(verr, "address", in.Address, 255)
	checkText(verr, "city", in.City, 100)

	if in.MonthlyRent < 0 {
		verr.Add("monthly_rent", "monthly_rent must not be negative")
	}
	if in.Status != "" && !domain.ValidStatus(domain.PropertyStatus(in.Status)) {
		verr.Add("status", "status must be one of: disponible, arrendado, mantenimiento")
	}

	checkAreaM2(verr, in.AreaM2)
	checkCount(verr, "bedrooms", in.Bedrooms)
	checkCount(verr, "bathrooms", in.Bathrooms)
	checkImageURL(verr, in.ImageURL)

	if verr.Empty() {
		return nil
	}
	return verr
}

// applyUpdate merges the sparse input into p, re-validating changed fields
// under the same rules as create. p is only modified when no field fails.
func applyUpdate(p *domain.Property, in ports.UpdatePropertyInput) *domain.ValidationError {
	verr := &domain.ValidationError{}
	next := *p

	if in.Type.Present {
		if !in.Type.Valid {
			verr.Add("type", "type must not be null")
		} else if !domain.ValidType(domain.PropertyType(in.Type.Value)) {
			verr.Add("type", "type must be one of: casa, apartamento, local, oficina")
		} else {
			next.Type = domain.PropertyType(in.Type.Value)
		}
	}
	if in.Title.Present {
		if !in.Title.Valid {
			verr.Add("title", "title must not be null")
		} else {
			checkText(verr, "title", in.Title.Value, 255)
			next.Title = in.Title.Value
		}
	}
	if in.Description.Present {
		if in.Description.Valid {
			v := in.Description.Value
			next.Description = &v
		} else {
			next.Description = nil
		}
	}
	if in.Address.Present {
		if !in.Address.Valid {
			verr.Add("address", "address must not be null")
		} else {
			checkText(verr, "address", in.Address.Value, 255)
			next.Address = in.Address.Value
		}
	}
	if in.City.Present {
		if !in.City.Valid {
			verr.Add("city", "city must not be null")
		} else {
			checkText(verr, "city", in.City.Value, 100)
			next.City = in.City.Value
		}
	}
	if in.AreaM2.Present {
		if in.AreaM2.Valid {
			v := in.AreaM2.Value
			checkAreaM2(verr, &v)
			next.AreaM2 = &v
		} else {
			next.AreaM2 = nil
		}
	}
	if in.Bedrooms.Present {
		if in.Bedrooms.Valid {
			v := in.Bedrooms.Value
			checkCount(verr, "bedrooms", &v)
			next.Bedrooms = &v
		} else {
			next.Bedrooms = nil
		}
	}
	if in.Bathrooms.Present {
		if in.Bathrooms.Valid {
			v := in.Bathrooms.Value
			checkCount(verr, "bathrooms", &v)
			next.Bathrooms = &v
		} else {
			next.Bathrooms = nil
		}
	}
	if in.MonthlyRent.Present {
		if !in.MonthlyRent.Valid {
			verr.Add("monthly_rent", "monthly_rent must not be null")
		} else {
			if in.MonthlyRent.Value < 0 {
				verr.Add("monthly_rent", "monthly_rent must not be negative")
			}
			next.MonthlyRent = in.MonthlyRent.Value
		}
	}
	if in.Status.Present {
		if !in.Status.Valid {
			verr.Add("status", "status must not be null")
		} else if !domain.ValidStatus(domain.PropertyStatus(in.Status.Value)) {
			verr.Add("status", "status must be one of: disponible, arrendado, mantenimiento")
		} else {
			next.Status = domain.PropertyStatus(in.Status.Value)
		}
	}
	if in.ImageURL.Present {
		if in.ImageURL.Valid {
			v := in.ImageURL.Value
			checkImageURL(verr, &v)
			next.ImageURL = &v
		} else {
			next.ImageURL = nil
		}
	}

	if !verr.Empty() {
		return verr
	}
	*p = next
	return nil
}

func checkText(verr *domain.ValidationError, field, value string, max int) {
	if value == "" {
		verr.Add(field, field+" is required")
		return
	}
	if len(value) > max {
		verr.Add(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
}

func checkAreaM2(verr *domain.ValidationError, v *float64) {
	if v != nil && *v < 0 {
		verr.Add("area_m2", "area_m2 must not be negative")
	}
}

func checkCount(verr *domain.ValidationError, field string, v *int) {
	if v != nil && *v < 0 {
		verr.Add(field, field+" must not be negative")
	}
}

func checkImageURL(verr *domain.ValidationError, v *string) {
	if v == nil {
		return
	}
	u, err := url.ParseRequestURI(*v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		verr.Add("image_url", "image_url must be a valid URL")
	}
}

