package listing

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

type Service struct {
	listings ListingRepository
	users    UserReader
}

func NewService(listings ListingRepository, users UserReader) *Service {
	return &Service{listings: listings, users: users}
}

func (s *Service) CreateListing(ctx context.Context, ownerID int64, req CreateListingRequest) (*domain.Listing, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	price, err := domain.NewPrice(req.PriceAmount, currency)
	if err != nil {
		return nil, err
	}
	deposit, err := domain.NewPrice(req.DepositAmount, currency)
	if err != nil {
		return nil, err
	}
	addr, err := domain.NewAddress(req.City, req.District, req.FullAddress, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	pt, err := domain.ParsePropertyType(req.PropertyType)
	if err != nil {
		return nil, err
	}

	availableFrom := req.AvailableFrom
	if availableFrom.IsZero() {
		availableFrom = time.Now().UTC()
	}

	l, err := domain.NewListing(ownerID, req.Title, req.Description, pt, req.Category, price, deposit, addr, availableFrom)
	if err != nil {
		return nil, err
	}
	l.Area = req.Area
	l.RoomCount = req.RoomCount
	l.Furnished = req.Furnished
	l.Amenities = req.Amenities

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateListing(ctx context.Context, actorID, listingID int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.ownedListing(ctx, actorID, listingID)
	if err != nil {
		return nil, err
	}

	prev := l.UpdatedAt
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Category != nil {
		l.Category = *req.Category
	}
	if req.PriceAmount != nil {
		p, err := domain.NewPrice(*req.PriceAmount, l.Price.Currency)
		if err != nil {
			return nil, err
		}
		l.Price = p
	}
	if req.DepositAmount != nil {
		d, err := domain.NewPrice(*req.DepositAmount, l.Deposit.Currency)
		if err != nil {
			return nil, err
		}
		l.Deposit = d
	}
	if req.Area != nil {
		l.Area = req.Area
	}
	if req.RoomCount != nil {
		l.RoomCount = req.RoomCount
	}
	if req.Furnished != nil {
		l.Furnished = *req.Furnished
	}
	if req.Amenities != nil {
		l.Amenities = *req.Amenities
	}
	if req.AvailableFrom != nil {
		l.AvailableFrom = *req.AvailableFrom
	}
	l.UpdatedAt = time.Now().UTC()

	if err := s.listings.Update(ctx, l, prev); err != nil {
		return nil, err
	}
	return l, nil
}

// PublishListing puts an approved listing on the market.
func (s *Service) PublishListing(ctx context.Context, actorID, listingID int64) (*domain.Listing, error) {
	return s.mutateOwned(ctx, actorID, listingID, func(l *domain.Listing) error {
		return l.Publish()
	})
}

func (s *Service) UnpublishListing(ctx context.Context, actorID, listingID int64) (*domain.Listing, error) {
	return s.mutateOwned(ctx, actorID, listingID, func(l *domain.Listing) error {
		l.Unpublish()
		return nil
	})
}

func (s *Service) AddPhoto(ctx context.Context, actorID, listingID int64, url string) (*domain.Listing, error) {
	return s.mutateOwned(ctx, actorID, listingID, func(l *domain.Listing) error {
		return l.AddPhoto(url)
	})
}

func (s *Service) RemovePhoto(ctx context.Context, actorID, listingID int64, url string) (*domain.Listing, error) {
	return s.mutateOwned(ctx, actorID, listingID, func(l *domain.Listing) error {
		if !l.RemovePhoto(url) {
			return fmt.Errorf("%w: photo not on this listing", domain.ErrNotFound)
		}
		return nil
	})
}

func (s *Service) DeleteListing(ctx context.Context, actorID int64, actorRole string, listingID int64) error {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if l.OwnerID != actorID && actorRole != string(domain.RoleAdmin) {
		return fmt.Errorf("%w: not the owner of this listing", domain.ErrForbidden)
	}
	return s.listings.Delete(ctx, listingID)
}

// GetListing loads a listing and bumps its view counter. The counter is
// best effort: a failed bump never fails the read.
func (s *Service) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.listings.IncrementViewCount(ctx, id); err == nil {
		l.ViewCount++
	}
	return l, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Listing, error) {
	return s.listings.FindByOwner(ctx, ownerID)
}

func (s *Service) Search(ctx context.Context, f repository.ListingFilters) ([]domain.Listing, int64, error) {
	return s.listings.Search(ctx, f)
}

func (s *Service) ownedListing(ctx context.Context, actorID, listingID int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != actorID {
		return nil, fmt.Errorf("%w: not the owner of this listing", domain.ErrForbidden)
	}
	return l, nil
}

func (s *Service) mutateOwned(ctx context.Context, actorID, listingID int64, apply func(*domain.Listing) error) (*domain.Listing, error) {
	l, err := s.ownedListing(ctx, actorID, listingID)
	if err != nil {
		return nil, err
	}

	prev := l.UpdatedAt
	if err := apply(l); err != nil {
		return nil, err
	}
	if err := s.listings.Update(ctx, l, prev); err != nil {
		return nil, err
	}
	return l, nil
}
