package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/domain"
	propertyDomain "github.com/staynest/service-reservation/internal/domain/property"
)

// CreatePropertyRequest is the request DTO for creating a listing.
type CreatePropertyRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	City             string `json:"city"`
	Country          string `json:"country"`
	NightlyRateCents int64  `json:"nightly_rate_cents" binding:"min=0"`
	MaxGuests        int    `json:"max_guests" binding:"required,gt=0"`
	CoverImageURL    string `json:"cover_image_url"`
}

// UpdatePropertyRequest is the request DTO for partially updating a listing.
type UpdatePropertyRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	City             string `json:"city"`
	Country          string `json:"country"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	MaxGuests        int    `json:"max_guests"`
	CoverImageURL    string `json:"cover_image_url"`
}

// PropertyDTO is the API response representation of a listing.
type PropertyDTO struct {
	ID               uuid.UUID `json:"id"`
	HostID           uuid.UUID `json:"host_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	City             string    `json:"city,omitempty"`
	Country          string    `json:"country,omitempty"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	MaxGuests        int       `json:"max_guests"`
	CoverImageURL    string    `json:"cover_image_url,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PropertyService implements use cases for host listing management.
type PropertyService struct {
	repo   propertyDomain.PropertyRepository
	logger *zap.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(repo propertyDomain.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{repo: repo, logger: logger}
}

// CreateProperty creates a new listing owned by the acting host.
func (s *PropertyService) CreateProperty(ctx context.Context, actor auth.Actor, req CreatePropertyRequest) (*PropertyDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}
	if actor.Role != auth.RoleHost {
		return nil, domain.NewForbiddenError("only hosts can create listings")
	}

	prop, err := propertyDomain.NewProperty(
		actor.ID,
		req.Title, req.Description, req.City, req.Country,
		req.NightlyRateCents, req.MaxGuests, req.CoverImageURL,
	)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, prop); err != nil {
		s.logger.Error("failed to create property", zap.Error(err))
		return nil, err
	}

	s.logger.Info("property created",
		zap.String("property_id", prop.ID().String()),
		zap.String("host_id", actor.ID.String()),
	)
	result := toPropertyDTO(prop)
	return &result, nil
}

// GetProperty returns a single listing. Inactive listings stay visible so a
// renter can still see the property behind an existing booking.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDTO, error) {
	prop, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	result := toPropertyDTO(prop)
	return &result, nil
}

// ListActiveProperties returns the public catalog page of active listings.
func (s *PropertyService) ListActiveProperties(ctx context.Context, page, limit int) (*domain.PaginatedResult[PropertyDTO], error) {
	props, total, err := s.repo.ListActive(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]PropertyDTO, len(props))
	for i, p := range props {
		dtos[i] = toPropertyDTO(p)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetMyProperties returns all listings owned by the acting host.
func (s *PropertyService) GetMyProperties(ctx context.Context, actor auth.Actor) ([]PropertyDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	props, err := s.repo.FindByHostID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]PropertyDTO, len(props))
	for i, p := range props {
		dtos[i] = toPropertyDTO(p)
	}
	return dtos, nil
}

// UpdateProperty applies a partial update, verifying ownership.
func (s *PropertyService) UpdateProperty(ctx context.Context, actor auth.Actor, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error) {
	prop, err := s.ownedProperty(ctx, actor, propertyID)
	if err != nil {
		return nil, err
	}

	prop.Update(
		req.Title, req.Description, req.City, req.Country,
		req.NightlyRateCents, req.MaxGuests, req.CoverImageURL,
	)

	if err := s.repo.Update(ctx, prop); err != nil {
		s.logger.Error("failed to update property", zap.Error(err))
		return nil, err
	}

	result := toPropertyDTO(prop)
	return &result, nil
}

// DeactivateProperty takes a listing off the market. Existing bookings are
// unaffected; only new reservations are blocked.
func (s *PropertyService) DeactivateProperty(ctx context.Context, actor auth.Actor, propertyID uuid.UUID) (*PropertyDTO, error) {
	prop, err := s.ownedProperty(ctx, actor, propertyID)
	if err != nil {
		return nil, err
	}

	prop.Deactivate()
	if err := s.repo.Update(ctx, prop); err != nil {
		return nil, err
	}

	s.logger.Info("property deactivated", zap.String("property_id", propertyID.String()))
	result := toPropertyDTO(prop)
	return &result, nil
}

// ActivateProperty puts a listing back on the market.
func (s *PropertyService) ActivateProperty(ctx context.Context, actor auth.Actor, propertyID uuid.UUID) (*PropertyDTO, error) {
	prop, err := s.ownedProperty(ctx, actor, propertyID)
	if err != nil {
		return nil, err
	}

	prop.Activate()
	if err := s.repo.Update(ctx, prop); err != nil {
		return nil, err
	}

	s.logger.Info("property activated", zap.String("property_id", propertyID.String()))
	result := toPropertyDTO(prop)
	return &result, nil
}

func (s *PropertyService) ownedProperty(ctx context.Context, actor auth.Actor, propertyID uuid.UUID) (*propertyDomain.Property, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	prop, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you do not own this listing")
	}
	return prop, nil
}

func toPropertyDTO(p *propertyDomain.Property) PropertyDTO {
	return PropertyDTO{
		ID:               p.ID(),
		HostID:           p.HostID(),
		Title:            p.Title(),
		Description:      p.Description(),
		City:             p.City(),
		Country:          p.Country(),
		NightlyRateCents: p.NightlyRateCents(),
		MaxGuests:        p.MaxGuests(),
		CoverImageURL:    p.CoverImageURL(),
		Status:           string(p.Status()),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}
