package admin

import (
	"context"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	FindPendingModeration(ctx context.Context, page, limit int) ([]domain.Listing, int64, error)
	Update(ctx context.Context, l *domain.Listing, expectedUpdatedAt time.Time) error
	// DB exposes the underlying handle for cross-table statistics queries.
	DB() *gorm.DB
}

type NotificationSender interface {
	NotifyListingModerated(ctx context.Context, ownerID, listingID int64, status domain.ModerationStatus, reason string) error
}
