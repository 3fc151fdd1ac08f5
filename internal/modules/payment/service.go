package payment

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/domain"

	"github.com/google/uuid"
)

type Service struct {
	payments     PaymentRepository
	reservations ReservationReader
}

func NewService(payments PaymentRepository, reservations ReservationReader) *Service {
	return &Service{
		payments:     payments,
		reservations: reservations,
	}
}

// CreatePayment opens a pending rent or deposit payment on a reservation.
// Only the tenant pays; refunds go through RefundDeposit instead.
func (s *Service) CreatePayment(ctx context.Context, tenantID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	kind := domain.PaymentKind(req.Kind)
	if kind != domain.PaymentKindRent && kind != domain.PaymentKindDeposit {
		return nil, fmt.Errorf("%w: kind must be rent or deposit", domain.ErrValidation)
	}

	res, err := s.reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.TenantID != tenantID {
		return nil, fmt.Errorf("%w: only the tenant may pay for this reservation", domain.ErrForbidden)
	}
	if res.Status != domain.ReservationAccepted {
		return nil, fmt.Errorf("%w: reservation is not accepted", domain.ErrConflict)
	}

	amount := res.TotalPrice
	if kind == domain.PaymentKindDeposit {
		amount = res.Deposit
		if amount.IsZero() {
			return nil, fmt.Errorf("%w: reservation carries no deposit", domain.ErrConflict)
		}
	}

	if err := s.ensureNotAlreadyPaid(ctx, res.ID, kind); err != nil {
		return nil, err
	}

	p, err := domain.NewPayment(res.ID, res.TenantID, res.OwnerID, amount, method, kind)
	if err != nil {
		return nil, err
	}
	p.TransactionRef = uuid.NewString()

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ValidatePayment marks a pending payment as gone through. Owner of the
// funds flow or an admin confirms; tenants cannot validate their own.
func (s *Service) ValidatePayment(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	return s.transition(ctx, id, actorID, actorRole, func(p *domain.Payment) error {
		return p.Validate(time.Now().UTC())
	})
}

func (s *Service) FailPayment(ctx context.Context, id, actorID int64, actorRole, reason string) (*domain.Payment, error) {
	return s.transition(ctx, id, actorID, actorRole, func(p *domain.Payment) error {
		return p.Fail(reason)
	})
}

func (s *Service) RefundPayment(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	return s.transition(ctx, id, actorID, actorRole, func(p *domain.Payment) error {
		return p.Refund()
	})
}

// RefundDeposit opens the deposit-restitution payment for a completed
// reservation. The refund is a new Payment row; the original deposit
// collection is left untouched. At most one live refund may exist.
func (s *Service) RefundDeposit(ctx context.Context, reservationID, actorID int64) (*domain.Payment, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the owner may refund the deposit", domain.ErrForbidden)
	}
	if res.Status != domain.ReservationCompleted {
		return nil, fmt.Errorf("%w: reservation is not completed", domain.ErrConflict)
	}
	if res.Deposit.IsZero() {
		return nil, fmt.Errorf("%w: reservation carries no deposit", domain.ErrConflict)
	}

	exists, err := s.payments.HasDepositRefund(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: deposit already refunded", domain.ErrConflict)
	}

	p, err := domain.NewPayment(res.ID, res.TenantID, res.OwnerID, res.Deposit, s.refundMethod(ctx, reservationID), domain.PaymentKindDepositRefund)
	if err != nil {
		return nil, err
	}
	p.TransactionRef = uuid.NewString()

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByReservation(ctx context.Context, reservationID, actorID int64) ([]domain.Payment, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.TenantID != actorID && res.OwnerID != actorID {
		return nil, fmt.Errorf("%w: not a party to this reservation", domain.ErrForbidden)
	}
	return s.payments.FindByReservation(ctx, reservationID)
}

func (s *Service) transition(ctx context.Context, id, actorID int64, actorRole string, apply func(*domain.Payment) error) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && p.OwnerID != actorID {
		return nil, fmt.Errorf("%w: not allowed to manage this payment", domain.ErrForbidden)
	}

	prev := p.UpdatedAt
	if err := apply(p); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, p, prev); err != nil {
		return nil, err
	}
	return p, nil
}

// ensureNotAlreadyPaid blocks a second live payment of the same kind.
func (s *Service) ensureNotAlreadyPaid(ctx context.Context, reservationID int64, kind domain.PaymentKind) error {
	existing, err := s.payments.FindByReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.Kind == kind && (p.Status == domain.PaymentPending || p.Status == domain.PaymentValidated) {
			return fmt.Errorf("%w: a %s payment already exists for this reservation", domain.ErrConflict, kind)
		}
	}
	return nil
}

// refundMethod reuses the channel the deposit came in through when it can
// be determined, and falls back to cash.
func (s *Service) refundMethod(ctx context.Context, reservationID int64) domain.PaymentMethod {
	existing, err := s.payments.FindByReservation(ctx, reservationID)
	if err != nil {
		return domain.MethodCash
	}
	for _, p := range existing {
		if p.Kind == domain.PaymentKindDeposit && p.Status == domain.PaymentValidated {
			return p.Method
		}
	}
	return domain.MethodCash
}
