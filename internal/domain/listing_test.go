package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func draftListing(t *testing.T) *Listing {
	t.Helper()
	addr, err := NewAddress("Dakar", "Plateau", "12 Rue Carnot", nil, nil)
	assert.NoError(t, err)
	l, err := NewListing(
		7,
		"Two-room apartment near campus",
		strings.Repeat("Bright and quiet apartment. ", 4),
		PropertyApartment,
		"long_term",
		testPrice(t, 10000),
		testPrice(t, 50000),
		addr,
		time.Now().UTC(),
	)
	assert.NoError(t, err)
	return l
}

func TestNewListing_Defaults(t *testing.T) {
	l := draftListing(t)
	assert.Equal(t, ModerationPending, l.ModerationStatus)
	assert.False(t, l.Available)
	assert.Equal(t, int64(7), l.OwnerID)
}

func TestNewListing_Invalid(t *testing.T) {
	addr, _ := NewAddress("Dakar", "Plateau", "12 Rue Carnot", nil, nil)
	price := testPrice(t, 100)

	_, err := NewListing(0, "title", "desc", PropertyHouse, "", price, price, addr, time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewListing(1, "", "desc", PropertyHouse, "", price, price, addr, time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewListing(1, "title", "desc", PropertyType("boat"), "", price, price, addr, time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListing_PublishRequiresApproval(t *testing.T) {
	l := draftListing(t)
	assert.NoError(t, l.AddPhoto("/static/uploads/listings/a.jpg"))

	assert.ErrorIs(t, l.Publish(), ErrConflict)

	assert.NoError(t, l.Approve())
	assert.NoError(t, l.Publish())
	assert.True(t, l.Available)
}

func TestListing_PublishRequiresPhotoAndDescription(t *testing.T) {
	l := draftListing(t)
	assert.NoError(t, l.Approve())

	// no photo yet
	assert.ErrorIs(t, l.Publish(), ErrValidation)

	assert.NoError(t, l.AddPhoto("/static/uploads/listings/a.jpg"))
	l.Description = "too short"
	assert.ErrorIs(t, l.Publish(), ErrValidation)
}

func TestListing_ModerationRejectForcesUnavailable(t *testing.T) {
	l := draftListing(t)
	assert.NoError(t, l.AddPhoto("/static/uploads/listings/a.jpg"))
	assert.NoError(t, l.Approve())
	assert.NoError(t, l.Publish())

	// moderation decisions only apply to pending listings
	assert.ErrorIs(t, l.RejectModeration(), ErrInvalidTransition)

	l2 := draftListing(t)
	l2.Available = true
	assert.NoError(t, l2.RejectModeration())
	assert.Equal(t, ModerationRejected, l2.ModerationStatus)
	assert.False(t, l2.Available)
}

func TestListing_PhotoCap(t *testing.T) {
	l := draftListing(t)
	for i := 0; i < MaxListingPhotos; i++ {
		assert.NoError(t, l.AddPhoto(fmt.Sprintf("/static/uploads/listings/%d.jpg", i)))
	}
	assert.ErrorIs(t, l.AddPhoto("/static/uploads/listings/extra.jpg"), ErrValidation)
}

func TestListing_RemovePhoto(t *testing.T) {
	l := draftListing(t)
	assert.NoError(t, l.AddPhoto("/a.jpg"))
	assert.NoError(t, l.AddPhoto("/b.jpg"))

	assert.True(t, l.RemovePhoto("/a.jpg"))
	assert.False(t, l.RemovePhoto("/a.jpg"))
	assert.Equal(t, []string{"/b.jpg"}, l.Photos)
}
