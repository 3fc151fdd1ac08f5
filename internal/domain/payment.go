package domain

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentValidated PaymentStatus = "validated"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodMobileMoneyA PaymentMethod = "mobile_money_a"
	MethodMobileMoneyB PaymentMethod = "mobile_money_b"
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodMobileMoneyA, MethodMobileMoneyB, MethodCard, MethodCash:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
}

type PaymentKind string

const (
	PaymentKindRent          PaymentKind = "rent"
	PaymentKindDeposit       PaymentKind = "deposit"
	PaymentKindDepositRefund PaymentKind = "deposit_refund"
)

// Payment is one monetary transaction tied to a reservation. A deposit
// refund is a separate Payment row, never a mutation of the original
// deposit collection.
type Payment struct {
	ID             int64         `json:"id"`
	ReservationID  int64         `json:"reservation_id"`
	TenantID       int64         `json:"tenant_id"`
	OwnerID        int64         `json:"owner_id"`
	Amount         Price         `json:"amount"`
	Method         PaymentMethod `json:"method"`
	Kind           PaymentKind   `json:"kind"`
	Status         PaymentStatus `json:"status"`
	TransactionRef string        `json:"transaction_ref,omitempty"`
	ValidatedAt    *time.Time    `json:"validated_at,omitempty"`
	FailureReason  string        `json:"failure_reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewPayment(reservationID, tenantID, ownerID int64, amount Price, method PaymentMethod, kind PaymentKind) (*Payment, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation is required", ErrValidation)
	}
	if tenantID <= 0 || ownerID <= 0 {
		return nil, fmt.Errorf("%w: tenant and owner are required", ErrValidation)
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	switch kind {
	case PaymentKindRent, PaymentKindDeposit, PaymentKindDepositRefund:
	default:
		return nil, fmt.Errorf("%w: unknown payment kind %q", ErrValidation, kind)
	}
	now := time.Now().UTC()
	return &Payment{
		ReservationID: reservationID,
		TenantID:      tenantID,
		OwnerID:       ownerID,
		Amount:        amount,
		Method:        method,
		Kind:          kind,
		Status:        PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Payment) Validate(now time.Time) error {
	if p.Status != PaymentPending {
		return fmt.Errorf("%w: cannot validate a %s payment", ErrInvalidTransition, p.Status)
	}
	p.Status = PaymentValidated
	t := now.UTC()
	p.ValidatedAt = &t
	p.touch()
	return nil
}

func (p *Payment) Fail(reason string) error {
	if p.Status != PaymentPending {
		return fmt.Errorf("%w: cannot fail a %s payment", ErrInvalidTransition, p.Status)
	}
	p.Status = PaymentFailed
	p.FailureReason = reason
	p.touch()
	return nil
}

func (p *Payment) Refund() error {
	if p.Status != PaymentValidated {
		return fmt.Errorf("%w: only validated payments can be refunded", ErrInvalidTransition)
	}
	p.Status = PaymentRefunded
	p.touch()
	return nil
}

func (p *Payment) touch() { p.UpdatedAt = time.Now().UTC() }
