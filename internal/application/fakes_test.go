package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-reservation/internal/common/domain"
	bookingDomain "github.com/staynest/service-reservation/internal/domain/booking"
	propertyDomain "github.com/staynest/service-reservation/internal/domain/property"
	reviewDomain "github.com/staynest/service-reservation/internal/domain/review"
)

// fakeBookingRepo is an in-memory BookingRepository for service tests. It
// mirrors the store's overlap semantics so availability behavior can be
// exercised without a database.
type fakeBookingRepo struct {
	bookings map[uuid.UUID]*bookingDomain.Booking
	order    []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByRenterID(ctx context.Context, renterID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(bk *bookingDomain.Booking) bool { return bk.RenterID() == renterID }, filter, page, limit)
}

func (r *fakeBookingRepo) FindByHostID(ctx context.Context, hostID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(bk *bookingDomain.Booking) bool { return bk.HostID() == hostID }, filter, page, limit)
}

func (r *fakeBookingRepo) filter(match func(*bookingDomain.Booking) bool, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var all []*bookingDomain.Booking
	for _, id := range r.order {
		bk := r.bookings[id]
		if !match(bk) {
			continue
		}
		if filter.Status != nil && bk.Status() != *filter.Status {
			continue
		}
		all = append(all, bk)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *fakeBookingRepo) ExistsOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	probe, err := bookingDomain.NewStayRange(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	for _, bk := range r.bookings {
		if bk.PropertyID() == propertyID && bk.Status().IsActive() && bk.Stay().Overlaps(probe) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(*bookingDomain.Booking) bool { return true }, bookingDomain.ListFilter{}, page, limit)
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	for _, existing := range r.bookings {
		if existing.PropertyID() == bk.PropertyID() && existing.Status().IsActive() && existing.Stay().Overlaps(bk.Stay()) {
			return domain.NewDateConflictError()
		}
	}
	r.bookings[bk.ID()] = bk
	r.order = append(r.order, bk.ID())
	return nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	if _, ok := r.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("booking", bk.ID().String())
	}
	r.bookings[bk.ID()] = bk
	return nil
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// fakePropertyRepo is an in-memory PropertyRepository.
type fakePropertyRepo struct {
	properties map[uuid.UUID]*propertyDomain.Property
	order      []uuid.UUID
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[uuid.UUID]*propertyDomain.Property)}
}

func (r *fakePropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.NewNotFoundError("property", id.String())
	}
	return p, nil
}

func (r *fakePropertyRepo) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*propertyDomain.Property, error) {
	var result []*propertyDomain.Property
	for _, id := range r.order {
		if r.properties[id].HostID() == hostID {
			result = append(result, r.properties[id])
		}
	}
	return result, nil
}

func (r *fakePropertyRepo) ListActive(ctx context.Context, page, limit int) ([]*propertyDomain.Property, int64, error) {
	var active []*propertyDomain.Property
	for _, id := range r.order {
		if r.properties[id].IsActive() {
			active = append(active, r.properties[id])
		}
	}
	return paginate(active, page, limit), int64(len(active)), nil
}

func (r *fakePropertyRepo) Save(ctx context.Context, p *propertyDomain.Property) error {
	r.properties[p.ID()] = p
	r.order = append(r.order, p.ID())
	return nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, p *propertyDomain.Property) error {
	if _, ok := r.properties[p.ID()]; !ok {
		return domain.NewNotFoundError("property", p.ID().String())
	}
	r.properties[p.ID()] = p
	return nil
}

// fakeReviewRepo is an in-memory ReviewRepository enforcing one review per booking.
type fakeReviewRepo struct {
	reviews map[uuid.UUID]*reviewDomain.Review
	order   []uuid.UUID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*reviewDomain.Review)}
}

func (r *fakeReviewRepo) Save(ctx context.Context, rv *reviewDomain.Review) error {
	for _, existing := range r.reviews {
		if existing.BookingID() == rv.BookingID() {
			return domain.NewConflictError("booking has already been reviewed")
		}
	}
	r.reviews[rv.ID()] = rv
	r.order = append(r.order, rv.ID())
	return nil
}

func (r *fakeReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	for _, rv := range r.reviews {
		if rv.BookingID() == bookingID {
			return rv, nil
		}
	}
	return nil, domain.NewNotFoundError("review", bookingID.String())
}

func (r *fakeReviewRepo) FindByPropertyID(ctx context.Context, propertyID uuid.UUID, page, limit int) ([]*reviewDomain.Review, int64, error) {
	var all []*reviewDomain.Review
	for _, id := range r.order {
		if r.reviews[id].PropertyID() == propertyID {
			all = append(all, r.reviews[id])
		}
	}
	return paginate(all, page, limit), int64(len(all)), nil
}
