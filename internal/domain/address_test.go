package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestNewAddress_Valid(t *testing.T) {
	a, err := NewAddress("Dakar", "Plateau", "12 Rue Carnot", f64(14.69), f64(-17.44))
	assert.NoError(t, err)
	assert.True(t, a.HasCoordinates())
}

func TestNewAddress_NoCoordinates(t *testing.T) {
	a, err := NewAddress("Dakar", "Plateau", "12 Rue Carnot", nil, nil)
	assert.NoError(t, err)
	assert.False(t, a.HasCoordinates())
}

func TestNewAddress_PartialCoordinates(t *testing.T) {
	_, err := NewAddress("Dakar", "Plateau", "12 Rue Carnot", f64(10), nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAddress("Dakar", "Plateau", "12 Rue Carnot", nil, f64(10))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewAddress_OutOfRange(t *testing.T) {
	_, err := NewAddress("Dakar", "Plateau", "12 Rue Carnot", f64(91), f64(0))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAddress("Dakar", "Plateau", "12 Rue Carnot", f64(0), f64(181))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewAddress_EmptyFields(t *testing.T) {
	_, err := NewAddress("", "Plateau", "12 Rue Carnot", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAddress("Dakar", " ", "12 Rue Carnot", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAddress("Dakar", "Plateau", "", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
