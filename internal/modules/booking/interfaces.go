package booking

import (
	"context"
	"time"

	"renthub/internal/domain"
)

// ReservationRepository is the persistence contract for reservations.
// CreateIfAvailable must be atomic with respect to concurrent creations on
// the same listing: of two overlapping requests at most one may succeed.
type ReservationRepository interface {
	CreateIfAvailable(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	FindConflicting(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error)
	FindByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Reservation, error)
	FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation, expectedUpdatedAt time.Time) error
	UpdateDatesIfAvailable(ctx context.Context, r *domain.Reservation, expectedUpdatedAt time.Time) error
}

type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender delivers booking emails. Failures are logged, never
// propagated: a lost email must not roll back a reservation.
type NotificationSender interface {
	NotifyReservationCreated(ctx context.Context, ownerID, reservationID, listingID int64, start time.Time) error
	NotifyReservationDecided(ctx context.Context, tenantID, reservationID int64, status domain.ReservationStatus) error
	NotifyReservationCancelled(ctx context.Context, userID, reservationID int64) error
}
