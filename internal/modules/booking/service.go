package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"renthub/internal/domain"
)

type Service struct {
	reservations ReservationRepository
	listings     ListingReader
	users        UserReader
	notifs       NotificationSender
}

func NewService(reservations ReservationRepository, listings ListingReader, users UserReader, notifs NotificationSender) *Service {
	return &Service{
		reservations: reservations,
		listings:     listings,
		users:        users,
		notifs:       notifs,
	}
}

// CreateReservation admits a booking request for a listing. Date ranges
// are half-open [start, end): a stay ending on a given day and one
// starting the same day do not collide.
func (s *Service) CreateReservation(ctx context.Context, tenantID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if !listing.Available {
		return nil, fmt.Errorf("%w: listing is not available", domain.ErrConflict)
	}

	if _, err := s.users.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}
	if listing.OwnerID == tenantID {
		return nil, fmt.Errorf("%w: owners cannot book their own listing", domain.ErrForbidden)
	}

	conflicts, err := s.reservations.FindConflicting(ctx, listing.ID, req.StartDate, req.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: dates unavailable", domain.ErrConflict)
	}

	total, err := listing.Price.Multiply(durationDays(req.StartDate, req.EndDate))
	if err != nil {
		return nil, err
	}

	res, err := domain.NewReservation(
		listing.ID,
		tenantID,
		listing.OwnerID,
		req.StartDate,
		req.EndDate,
		req.OccupantCount,
		total,
		listing.Deposit,
		req.Message,
	)
	if err != nil {
		return nil, err
	}

	// the repository re-checks the overlap inside a transaction, so a
	// racing request cannot slip in between the check above and this insert
	if err := s.reservations.CreateIfAvailable(ctx, res); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReservationCreated(ctx, res.OwnerID, res.ID, res.ListingID, res.StartDate)
	}

	return res, nil
}

func (s *Service) GetReservation(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.TenantID != actorID && res.OwnerID != actorID {
		return nil, fmt.Errorf("%w: not a party to this reservation", domain.ErrForbidden)
	}
	return res, nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID int64, page, limit int) ([]domain.Reservation, error) {
	limit, offset := pageToRange(page, limit)
	return s.reservations.FindByTenant(ctx, tenantID, limit, offset)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, page, limit int) ([]domain.Reservation, error) {
	limit, offset := pageToRange(page, limit)
	return s.reservations.FindByOwner(ctx, ownerID, limit, offset)
}

// Accept confirms a pending reservation. Owner only.
func (s *Service) Accept(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(res *domain.Reservation) error {
		if res.OwnerID != actorID {
			return fmt.Errorf("%w: only the owner may accept", domain.ErrForbidden)
		}
		return res.Accept()
	})
}

// Reject declines a pending reservation. Owner only.
func (s *Service) Reject(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(res *domain.Reservation) error {
		if res.OwnerID != actorID {
			return fmt.Errorf("%w: only the owner may reject", domain.ErrForbidden)
		}
		return res.Reject()
	})
}

// Cancel may be called by the tenant or the owner, any time before completion.
func (s *Service) Cancel(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(res *domain.Reservation) error {
		if res.TenantID != actorID && res.OwnerID != actorID {
			return fmt.Errorf("%w: not a party to this reservation", domain.ErrForbidden)
		}
		return res.Cancel()
	})
}

// Complete closes out an accepted stay once the end date has passed. Owner only.
func (s *Service) Complete(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(res *domain.Reservation) error {
		if res.OwnerID != actorID {
			return fmt.Errorf("%w: only the owner may complete", domain.ErrForbidden)
		}
		return res.Complete(time.Now().UTC())
	})
}

// UpdateDates moves a pending reservation. The repository re-runs the
// overlap check against every other reservation on the listing in the same
// transaction as the write, so a racing booking cannot slip in between a
// separate check and the update.
func (s *Service) UpdateDates(ctx context.Context, id, actorID int64, req UpdateDatesRequest) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.TenantID != actorID {
		return nil, fmt.Errorf("%w: only the tenant may change dates", domain.ErrForbidden)
	}

	prev := res.UpdatedAt
	if err := res.UpdateDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateDatesIfAvailable(ctx, res, prev); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) transition(ctx context.Context, id int64, apply func(*domain.Reservation) error) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := res.UpdatedAt
	if err := apply(res); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, res, prev); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		switch res.Status {
		case domain.ReservationAccepted, domain.ReservationRejected:
			_ = s.notifs.NotifyReservationDecided(ctx, res.TenantID, res.ID, res.Status)
		case domain.ReservationCancelled:
			_ = s.notifs.NotifyReservationCancelled(ctx, res.TenantID, res.ID)
		}
	}

	return res, nil
}

// durationDays counts whole days in the half-open range, rounding partial
// days up. The constructor guarantees end > start, so this is always >= 1.
func durationDays(start, end time.Time) float64 {
	return math.Ceil(end.Sub(start).Hours() / 24)
}

func pageToRange(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
