package listing

import (
	"context"
	"time"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing, expectedUpdatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f repository.ListingFilters) ([]domain.Listing, int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
