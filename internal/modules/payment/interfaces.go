package payment

import (
	"context"
	"time"

	"renthub/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	HasDepositRefund(ctx context.Context, reservationID int64) (bool, error)
	Update(ctx context.Context, p *domain.Payment, expectedUpdatedAt time.Time) error
}

type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}
