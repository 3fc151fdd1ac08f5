package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pendingPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(1, 2, 3, testPrice(t, 50000), MethodMobileMoneyA, PaymentKindDeposit)
	assert.NoError(t, err)
	return p
}

func TestNewPayment_UnknownMethod(t *testing.T) {
	_, err := NewPayment(1, 2, 3, testPrice(t, 100), PaymentMethod("paypal"), PaymentKindRent)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewPayment_UnknownKind(t *testing.T) {
	_, err := NewPayment(1, 2, 3, testPrice(t, 100), MethodCash, PaymentKind("bonus"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPayment_ValidateStampsValidatedAt(t *testing.T) {
	p := pendingPayment(t)
	now := time.Now().UTC()

	assert.NoError(t, p.Validate(now))
	assert.Equal(t, PaymentValidated, p.Status)
	if assert.NotNil(t, p.ValidatedAt) {
		assert.Equal(t, now, *p.ValidatedAt)
	}

	assert.ErrorIs(t, p.Validate(now), ErrInvalidTransition)
}

func TestPayment_FailRecordsReason(t *testing.T) {
	p := pendingPayment(t)

	assert.NoError(t, p.Fail("provider timeout"))
	assert.Equal(t, PaymentFailed, p.Status)
	assert.Equal(t, "provider timeout", p.FailureReason)

	// failed is terminal
	assert.ErrorIs(t, p.Validate(time.Now()), ErrInvalidTransition)
	assert.ErrorIs(t, p.Refund(), ErrInvalidTransition)
}

func TestPayment_RefundOnlyFromValidated(t *testing.T) {
	p := pendingPayment(t)
	assert.ErrorIs(t, p.Refund(), ErrInvalidTransition)

	assert.NoError(t, p.Validate(time.Now()))
	assert.NoError(t, p.Refund())
	assert.Equal(t, PaymentRefunded, p.Status)

	// refunded is terminal
	assert.ErrorIs(t, p.Refund(), ErrInvalidTransition)
}
