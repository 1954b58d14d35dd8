package property

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PropertyStatus represents the lifecycle state of a listing.
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
)

// Property is the aggregate root for a host's listing. The reservation
// engine reads it for pricing, capacity and availability decisions.
type Property struct {
	id               uuid.UUID
	hostID           uuid.UUID
	title            string
	description      string
	city             string
	country          string
	nightlyRateCents int64
	maxGuests        int
	coverImageURL    string
	status           PropertyStatus
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewProperty creates a new active listing with validated fields.
func NewProperty(
	hostID uuid.UUID,
	title, description, city, country string,
	nightlyRateCents int64,
	maxGuests int,
	coverImageURL string,
) (*Property, error) {
	if hostID == uuid.Nil {
		return nil, fmt.Errorf("host ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if nightlyRateCents < 0 {
		return nil, fmt.Errorf("nightly rate cannot be negative")
	}
	if maxGuests <= 0 {
		return nil, fmt.Errorf("max guests must be positive")
	}

	now := time.Now().UTC()
	return &Property{
		id:               uuid.New(),
		hostID:           hostID,
		title:            title,
		description:      description,
		city:             city,
		country:          country,
		nightlyRateCents: nightlyRateCents,
		maxGuests:        maxGuests,
		coverImageURL:    coverImageURL,
		status:           PropertyStatusActive,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Property from persistence data (no validation).
func Reconstruct(
	id, hostID uuid.UUID,
	title, description, city, country string,
	nightlyRateCents int64,
	maxGuests int,
	coverImageURL string,
	status PropertyStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:               id,
		hostID:           hostID,
		title:            title,
		description:      description,
		city:             city,
		country:          country,
		nightlyRateCents: nightlyRateCents,
		maxGuests:        maxGuests,
		coverImageURL:    coverImageURL,
		status:           status,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (p *Property) ID() uuid.UUID           { return p.id }
func (p *Property) HostID() uuid.UUID       { return p.hostID }
func (p *Property) Title() string           { return p.title }
func (p *Property) Description() string     { return p.description }
func (p *Property) City() string            { return p.city }
func (p *Property) Country() string         { return p.country }
func (p *Property) NightlyRateCents() int64 { return p.nightlyRateCents }
func (p *Property) MaxGuests() int          { return p.maxGuests }
func (p *Property) CoverImageURL() string   { return p.coverImageURL }
func (p *Property) Status() PropertyStatus  { return p.status }
func (p *Property) Version() int64          { return p.version }
func (p *Property) CreatedAt() time.Time    { return p.createdAt }
func (p *Property) UpdatedAt() time.Time    { return p.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the listing belongs to the given host.
func (p *Property) IsOwnedBy(hostID uuid.UUID) bool {
	return p.hostID == hostID
}

// IsActive returns true if the listing accepts new bookings.
func (p *Property) IsActive() bool {
	return p.status == PropertyStatusActive
}

// Update applies partial updates to the listing.
func (p *Property) Update(
	title, description, city, country string,
	nightlyRateCents int64,
	maxGuests int,
	coverImageURL string,
) {
	if title != "" {
		p.title = title
	}
	if description != "" {
		p.description = description
	}
	if city != "" {
		p.city = city
	}
	if country != "" {
		p.country = country
	}
	if nightlyRateCents > 0 {
		p.nightlyRateCents = nightlyRateCents
	}
	if maxGuests > 0 {
		p.maxGuests = maxGuests
	}
	if coverImageURL != "" {
		p.coverImageURL = coverImageURL
	}
	p.version++
	p.updatedAt = time.Now().UTC()
}

// Deactivate takes the listing off the market. Existing bookings are untouched.
func (p *Property) Deactivate() {
	p.status = PropertyStatusInactive
	p.version++
	p.updatedAt = time.Now().UTC()
}

// Activate puts the listing back on the market.
func (p *Property) Activate() {
	p.status = PropertyStatusActive
	p.version++
	p.updatedAt = time.Now().UTC()
}
