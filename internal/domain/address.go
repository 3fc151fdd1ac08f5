package domain

import (
	"fmt"
	"strings"
)

// Address describes where a listing is located. Coordinates are optional
// but must come as a pair.
type Address struct {
	City        string   `json:"city"`
	District    string   `json:"district"`
	FullAddress string   `json:"full_address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func NewAddress(city, district, fullAddress string, lat, lon *float64) (Address, error) {
	if strings.TrimSpace(city) == "" {
		return Address{}, fmt.Errorf("%w: city is required", ErrValidation)
	}
	if strings.TrimSpace(district) == "" {
		return Address{}, fmt.Errorf("%w: district is required", ErrValidation)
	}
	if strings.TrimSpace(fullAddress) == "" {
		return Address{}, fmt.Errorf("%w: full address is required", ErrValidation)
	}
	if (lat == nil) != (lon == nil) {
		return Address{}, fmt.Errorf("%w: latitude and longitude must both be set or both be empty", ErrValidation)
	}
	if lat != nil {
		if *lat < -90 || *lat > 90 {
			return Address{}, fmt.Errorf("%w: latitude out of range", ErrValidation)
		}
		if *lon < -180 || *lon > 180 {
			return Address{}, fmt.Errorf("%w: longitude out of range", ErrValidation)
		}
	}
	return Address{
		City:        city,
		District:    district,
		FullAddress: fullAddress,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

func (a Address) HasCoordinates() bool { return a.Latitude != nil && a.Longitude != nil }
