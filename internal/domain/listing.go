package domain

import (
	"fmt"
	"strings"
	"time"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyLand      PropertyType = "land"
	PropertyVehicle   PropertyType = "vehicle"
)

func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case PropertyApartment, PropertyHouse, PropertyLand, PropertyVehicle:
		return PropertyType(s), nil
	}
	return "", fmt.Errorf("%w: unknown property type %q", ErrValidation, s)
}

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

const (
	MaxListingPhotos     = 20
	MinDescriptionLength = 50
)

// Listing is a postable property or vehicle available for rental.
// OwnerID never changes after creation.
type Listing struct {
	ID               int64            `json:"id"`
	OwnerID          int64            `json:"owner_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	PropertyType     PropertyType     `json:"property_type"`
	Category         string           `json:"category,omitempty"`
	Price            Price            `json:"price"`
	Deposit          Price            `json:"deposit"`
	Address          Address          `json:"address"`
	Area             *float64         `json:"area,omitempty"`
	RoomCount        *int             `json:"room_count,omitempty"`
	Furnished        bool             `json:"furnished"`
	Amenities        []string         `json:"amenities,omitempty"`
	Photos           []string         `json:"photos,omitempty"`
	Available        bool             `json:"available"`
	AvailableFrom    time.Time        `json:"available_from"`
	ViewCount        int64            `json:"view_count"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func NewListing(ownerID int64, title, description string, pt PropertyType, category string, price, deposit Price, addr Address, availableFrom time.Time) (*Listing, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, err := ParsePropertyType(string(pt)); err != nil {
		return nil, err
	}
	if price.Currency != deposit.Currency {
		return nil, fmt.Errorf("%w: price %s vs deposit %s", ErrCurrencyMismatch, price.Currency, deposit.Currency)
	}
	now := time.Now().UTC()
	return &Listing{
		OwnerID:          ownerID,
		Title:            title,
		Description:      description,
		PropertyType:     pt,
		Category:         category,
		Price:            price,
		Deposit:          deposit,
		Address:          addr,
		Available:        false,
		AvailableFrom:    availableFrom,
		ModerationStatus: ModerationPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Publish makes an approved listing visible for booking. The listing must
// carry at least one photo, a title and a description of at least 50 chars.
func (l *Listing) Publish() error {
	if l.ModerationStatus != ModerationApproved {
		return fmt.Errorf("%w: listing is not approved", ErrConflict)
	}
	if len(l.Photos) == 0 {
		return fmt.Errorf("%w: at least one photo is required to publish", ErrValidation)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title is required to publish", ErrValidation)
	}
	if len(strings.TrimSpace(l.Description)) < MinDescriptionLength {
		return fmt.Errorf("%w: description must be at least %d characters to publish", ErrValidation, MinDescriptionLength)
	}
	l.Available = true
	l.touch()
	return nil
}

func (l *Listing) Unpublish() {
	l.Available = false
	l.touch()
}

func (l *Listing) Approve() error {
	if l.ModerationStatus != ModerationPending {
		return fmt.Errorf("%w: listing is not pending moderation", ErrInvalidTransition)
	}
	l.ModerationStatus = ModerationApproved
	l.touch()
	return nil
}

// RejectModeration marks the listing rejected and pulls it off the market.
func (l *Listing) RejectModeration() error {
	if l.ModerationStatus != ModerationPending {
		return fmt.Errorf("%w: listing is not pending moderation", ErrInvalidTransition)
	}
	l.ModerationStatus = ModerationRejected
	l.Available = false
	l.touch()
	return nil
}

func (l *Listing) AddPhoto(url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: photo url is required", ErrValidation)
	}
	if len(l.Photos) >= MaxListingPhotos {
		return fmt.Errorf("%w: a listing may carry at most %d photos", ErrValidation, MaxListingPhotos)
	}
	l.Photos = append(l.Photos, url)
	l.touch()
	return nil
}

func (l *Listing) RemovePhoto(url string) bool {
	for i, p := range l.Photos {
		if p == url {
			l.Photos = append(l.Photos[:i], l.Photos[i+1:]...)
			l.touch()
			return true
		}
	}
	return false
}

func (l *Listing) touch() { l.UpdatedAt = time.Now().UTC() }
