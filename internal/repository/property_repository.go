package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staynest/service-reservation/internal/common/domain"
	propertyDomain "github.com/staynest/service-reservation/internal/domain/property"
)

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Title            string    `gorm:"not null;size:200"`
	Description      string    `gorm:"size:2000"`
	City             string    `gorm:"size:100;index"`
	Country          string    `gorm:"size:100"`
	NightlyRateCents int64     `gorm:"not null"`
	MaxGuests        int       `gorm:"not null"`
	CoverImageURL    string    `gorm:"size:500"`
	Status           string    `gorm:"not null;size:20;index"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PropertyModel) TableName() string {
	return "properties"
}

// GormPropertyRepository is the GORM-based implementation of PropertyRepository.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository.
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID retrieves a listing by its unique identifier.
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	var model PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("property", id.String())
		}
		return nil, domain.NewInternalError("failed to find property by ID", err)
	}
	return toDomainProperty(&model), nil
}

// FindByHostID retrieves all listings owned by a host.
func (r *GormPropertyRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*propertyDomain.Property, error) {
	var models []PropertyModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, domain.NewInternalError("failed to find host properties", err)
	}

	props := make([]*propertyDomain.Property, len(models))
	for i, m := range models {
		props[i] = toDomainProperty(&m)
	}
	return props, nil
}

// ListActive retrieves active listings with pagination.
func (r *GormPropertyRepository) ListActive(ctx context.Context, page, limit int) ([]*propertyDomain.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&PropertyModel{}).
		Where("status = ?", string(propertyDomain.PropertyStatusActive))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count properties", err)
	}

	var models []PropertyModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list properties", err)
	}

	props := make([]*propertyDomain.Property, len(models))
	for i, m := range models {
		props[i] = toDomainProperty(&m)
	}
	return props, total, nil
}

// Save persists a new listing.
func (r *GormPropertyRepository) Save(ctx context.Context, prop *propertyDomain.Property) error {
	model := toPropertyModel(prop)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewInternalError("failed to save property", err)
	}
	return nil
}

// Update persists changes to an existing listing with optimistic locking.
func (r *GormPropertyRepository) Update(ctx context.Context, prop *propertyDomain.Property) error {
	model := toPropertyModel(prop)

	expectedVersion := prop.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PropertyModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":              model.Title,
			"description":        model.Description,
			"city":               model.City,
			"country":            model.Country,
			"nightly_rate_cents": model.NightlyRateCents,
			"max_guests":         model.MaxGuests,
			"cover_image_url":    model.CoverImageURL,
			"status":             model.Status,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewInternalError("failed to update property", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("property was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toPropertyModel(p *propertyDomain.Property) *PropertyModel {
	return &PropertyModel{
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
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toDomainProperty(m *PropertyModel) *propertyDomain.Property {
	return propertyDomain.Reconstruct(
		m.ID,
		m.HostID,
		m.Title,
		m.Description,
		m.City,
		m.Country,
		m.NightlyRateCents,
		m.MaxGuests,
		m.CoverImageURL,
		propertyDomain.PropertyStatus(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
