package domain

import (
	"fmt"
	"math"
)

// Price is an immutable monetary amount. Amounts are kept rounded to two
// decimal places; arithmetic returns new values and never mutates.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

const DefaultCurrency = "XOF"

func NewPrice(amount float64, currency string) (Price, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Price{}, fmt.Errorf("%w: price amount must be finite", ErrValidation)
	}
	if amount < 0 {
		return Price{}, fmt.Errorf("%w: price amount must not be negative", ErrValidation)
	}
	if currency == "" {
		return Price{}, fmt.Errorf("%w: price currency is required", ErrValidation)
	}
	return Price{Amount: round2(amount), Currency: currency}, nil
}

func (p Price) Add(other Price) (Price, error) {
	if p.Currency != other.Currency {
		return Price{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, p.Currency, other.Currency)
	}
	return Price{Amount: round2(p.Amount + other.Amount), Currency: p.Currency}, nil
}

func (p Price) Subtract(other Price) (Price, error) {
	if p.Currency != other.Currency {
		return Price{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, p.Currency, other.Currency)
	}
	if other.Amount > p.Amount {
		return Price{}, fmt.Errorf("%w: price amount must not be negative", ErrValidation)
	}
	return Price{Amount: round2(p.Amount - other.Amount), Currency: p.Currency}, nil
}

func (p Price) Multiply(factor float64) (Price, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return Price{}, fmt.Errorf("%w: multiplier must be finite and non-negative", ErrValidation)
	}
	return Price{Amount: round2(p.Amount * factor), Currency: p.Currency}, nil
}

func (p Price) IsZero() bool { return p.Amount == 0 }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
