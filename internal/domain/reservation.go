package domain

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationAccepted  ReservationStatus = "accepted"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Reservation is a tenant's request to book a listing for a date range.
// Date ranges are half-open [StartDate, EndDate), so back-to-back
// bookings on the boundary day do not collide.
type Reservation struct {
	ID            int64             `json:"id"`
	ListingID     int64             `json:"listing_id"`
	TenantID      int64             `json:"tenant_id"`
	OwnerID       int64             `json:"owner_id"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	OccupantCount int               `json:"occupant_count"`
	TotalPrice    Price             `json:"total_price"`
	Deposit       Price             `json:"deposit"`
	Message       string            `json:"message,omitempty"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewReservation(listingID, tenantID, ownerID int64, start, end time.Time, occupants int, total, deposit Price, message string) (*Reservation, error) {
	if listingID <= 0 || tenantID <= 0 || ownerID <= 0 {
		return nil, fmt.Errorf("%w: listing, tenant and owner are required", ErrValidation)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	today := truncateToDay(time.Now().UTC())
	if start.Before(today) {
		return nil, fmt.Errorf("%w: start date must not be in the past", ErrValidation)
	}
	if occupants < 1 {
		return nil, fmt.Errorf("%w: occupant count must be at least 1", ErrValidation)
	}
	now := time.Now().UTC()
	return &Reservation{
		ListingID:     listingID,
		TenantID:      tenantID,
		OwnerID:       ownerID,
		StartDate:     start,
		EndDate:       end,
		OccupantCount: occupants,
		TotalPrice:    total,
		Deposit:       deposit,
		Message:       message,
		Status:        ReservationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *Reservation) Accept() error {
	if r.Status != ReservationPending {
		return fmt.Errorf("%w: cannot accept a %s reservation", ErrInvalidTransition, r.Status)
	}
	r.Status = ReservationAccepted
	r.touch()
	return nil
}

func (r *Reservation) Reject() error {
	if r.Status != ReservationPending {
		return fmt.Errorf("%w: cannot reject a %s reservation", ErrInvalidTransition, r.Status)
	}
	r.Status = ReservationRejected
	r.touch()
	return nil
}

// Cancel is allowed from any state except completed.
func (r *Reservation) Cancel() error {
	if r.Status == ReservationCompleted {
		return fmt.Errorf("%w: cannot cancel a completed reservation", ErrInvalidTransition)
	}
	if r.Status == ReservationCancelled {
		return fmt.Errorf("%w: reservation is already cancelled", ErrInvalidTransition)
	}
	r.Status = ReservationCancelled
	r.touch()
	return nil
}

// Complete closes out an accepted stay once its end date has passed.
func (r *Reservation) Complete(now time.Time) error {
	if r.Status != ReservationAccepted {
		return fmt.Errorf("%w: cannot complete a %s reservation", ErrInvalidTransition, r.Status)
	}
	if now.Before(r.EndDate) {
		return fmt.Errorf("%w: cannot complete before end date", ErrPreconditionFailed)
	}
	r.Status = ReservationCompleted
	r.touch()
	return nil
}

func (r *Reservation) UpdateDates(start, end time.Time) error {
	if r.Status != ReservationPending {
		return fmt.Errorf("%w: dates can only change while pending", ErrInvalidTransition)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	r.StartDate = start
	r.EndDate = end
	r.touch()
	return nil
}

// Overlaps reports whether the half-open ranges of two reservations intersect.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && r.EndDate.After(start)
}

func (r *Reservation) touch() { r.UpdatedAt = time.Now().UTC() }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
