package notification

import (
	"context"
	"log"
	"time"

	"renthub/internal/domain"
)

// Event type constants, used as log markers and later as template keys.
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationDecided   = "reservation.decided"
	TypeReservationCancelled = "reservation.cancelled"
	TypeListingModerated     = "listing.moderated"
)

// LogSender writes notification events to the process log. It satisfies the
// sender interfaces of the booking and admin modules; swapping in a real
// email or push backend only needs the same method set.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) NotifyReservationCreated(ctx context.Context, ownerID, reservationID, listingID int64, start time.Time) error {
	log.Printf("[notify] %s user=%d reservation=%d listing=%d start=%s",
		TypeReservationCreated, ownerID, reservationID, listingID, start.Format("2006-01-02"))
	return nil
}

func (s *LogSender) NotifyReservationDecided(ctx context.Context, tenantID, reservationID int64, status domain.ReservationStatus) error {
	log.Printf("[notify] %s user=%d reservation=%d status=%s",
		TypeReservationDecided, tenantID, reservationID, status)
	return nil
}

func (s *LogSender) NotifyReservationCancelled(ctx context.Context, userID, reservationID int64) error {
	log.Printf("[notify] %s user=%d reservation=%d",
		TypeReservationCancelled, userID, reservationID)
	return nil
}

func (s *LogSender) NotifyListingModerated(ctx context.Context, ownerID, listingID int64, status domain.ModerationStatus, reason string) error {
	if reason != "" {
		log.Printf("[notify] %s user=%d listing=%d status=%s reason=%q",
			TypeListingModerated, ownerID, listingID, status, reason)
		return nil
	}
	log.Printf("[notify] %s user=%d listing=%d status=%s",
		TypeListingModerated, ownerID, listingID, status)
	return nil
}
