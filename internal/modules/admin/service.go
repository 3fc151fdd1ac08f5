package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"renthub/internal/domain"
)

type Service struct {
	listings ListingRepository
	notifs   NotificationSender
}

func NewService(listings ListingRepository, notifs NotificationSender) *Service {
	return &Service{listings: listings, notifs: notifs}
}

func (s *Service) GetPendingListings(ctx context.Context, page, limit int) ([]domain.Listing, int64, error) {
	return s.listings.FindPendingModeration(ctx, page, limit)
}

// ApproveListing passes moderation. The listing stays off the market until
// its owner publishes it.
func (s *Service) ApproveListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	return s.moderate(ctx, listingID, "", func(l *domain.Listing) error {
		return l.Approve()
	})
}

// RejectListing fails moderation and pulls the listing off the market.
func (s *Service) RejectListing(ctx context.Context, listingID int64, reason string) (*domain.Listing, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	return s.moderate(ctx, listingID, reason, func(l *domain.Listing) error {
		return l.RejectModeration()
	})
}

func (s *Service) moderate(ctx context.Context, listingID int64, reason string, apply func(*domain.Listing) error) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
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

	if s.notifs != nil {
		_ = s.notifs.NotifyListingModerated(ctx, l.OwnerID, l.ID, l.ModerationStatus, reason)
	}
	return l, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	db := s.listings.DB().WithContext(ctx)

	var stats StatisticsResponse
	if err := db.Table("users").Count(&stats.TotalUsers).Error; err != nil {
		return nil, domain.Infra("admin.stats", err)
	}
	if err := db.Table("listings").Count(&stats.TotalListings).Error; err != nil {
		return nil, domain.Infra("admin.stats", err)
	}
	if err := db.Table("reservations").Count(&stats.TotalReservations).Error; err != nil {
		return nil, domain.Infra("admin.stats", err)
	}
	if err := db.Table("listings").
		Where("moderation_status = ?", string(domain.ModerationPending)).
		Count(&stats.PendingListings).Error; err != nil {
		return nil, domain.Infra("admin.stats", err)
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := db.Table("reservations").
		Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour)).
		Count(&stats.TodayReservations).Error; err != nil {
		return nil, domain.Infra("admin.stats", err)
	}

	return &stats, nil
}
