package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type ListingFilters struct {
	PropertyType string
	City         string
	District     string
	MinPrice     float64
	MaxPrice     float64
	MinRooms     int
	MinArea      float64
	Furnished    *bool
	Page         int
	Limit        int
	Sort         string
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// DB exposes the raw handle for cross-table reporting queries.
func (r *ListingRepository) DB() *gorm.DB { return r.db }

type listingModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	OwnerID          int64     `gorm:"column:owner_id;index"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description;type:text"`
	PropertyType     string    `gorm:"column:property_type;index"`
	Category         string    `gorm:"column:category"`
	PriceAmount      float64   `gorm:"column:price_amount"`
	PriceCurrency    string    `gorm:"column:price_currency"`
	DepositAmount    float64   `gorm:"column:deposit_amount"`
	DepositCurrency  string    `gorm:"column:deposit_currency"`
	City             string    `gorm:"column:city;index"`
	District         string    `gorm:"column:district"`
	FullAddress      string    `gorm:"column:full_address"`
	Latitude         *float64  `gorm:"column:latitude"`
	Longitude        *float64  `gorm:"column:longitude"`
	Area             *float64  `gorm:"column:area"`
	RoomCount        *int      `gorm:"column:room_count"`
	Furnished        bool      `gorm:"column:furnished"`
	Amenities        string    `gorm:"column:amenities;type:text"`
	Photos           string    `gorm:"column:photos;type:text"`
	Available        bool      `gorm:"column:available;index"`
	AvailableFrom    time.Time `gorm:"column:available_from"`
	ViewCount        int64     `gorm:"column:view_count"`
	ModerationStatus string    `gorm:"column:moderation_status;index"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

func toDomainListing(m listingModel) *domain.Listing {
	var amenities, photos []string
	if m.Amenities != "" {
		_ = json.Unmarshal([]byte(m.Amenities), &amenities)
	}
	if m.Photos != "" {
		_ = json.Unmarshal([]byte(m.Photos), &photos)
	}

	return &domain.Listing{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		PropertyType: domain.PropertyType(m.PropertyType),
		Category:     m.Category,
		Price:        domain.Price{Amount: m.PriceAmount, Currency: m.PriceCurrency},
		Deposit:      domain.Price{Amount: m.DepositAmount, Currency: m.DepositCurrency},
		Address: domain.Address{
			City:        m.City,
			District:    m.District,
			FullAddress: m.FullAddress,
			Latitude:    m.Latitude,
			Longitude:   m.Longitude,
		},
		Area:             m.Area,
		RoomCount:        m.RoomCount,
		Furnished:        m.Furnished,
		Amenities:        amenities,
		Photos:           photos,
		Available:        m.Available,
		AvailableFrom:    m.AvailableFrom,
		ViewCount:        m.ViewCount,
		ModerationStatus: domain.ModerationStatus(m.ModerationStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toListingModel(l *domain.Listing) listingModel {
	amenities, _ := json.Marshal(l.Amenities)
	photos, _ := json.Marshal(l.Photos)

	return listingModel{
		ID:               l.ID,
		OwnerID:          l.OwnerID,
		Title:            l.Title,
		Description:      l.Description,
		PropertyType:     string(l.PropertyType),
		Category:         l.Category,
		PriceAmount:      l.Price.Amount,
		PriceCurrency:    l.Price.Currency,
		DepositAmount:    l.Deposit.Amount,
		DepositCurrency:  l.Deposit.Currency,
		City:             l.Address.City,
		District:         l.Address.District,
		FullAddress:      l.Address.FullAddress,
		Latitude:         l.Address.Latitude,
		Longitude:        l.Address.Longitude,
		Area:             l.Area,
		RoomCount:        l.RoomCount,
		Furnished:        l.Furnished,
		Amenities:        string(amenities),
		Photos:           string(photos),
		Available:        l.Available,
		AvailableFrom:    l.AvailableFrom,
		ViewCount:        l.ViewCount,
		ModerationStatus: string(l.ModerationStatus),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return domain.Infra("listing.create", tx.Error)
	}
	*l = *toDomainListing(m)
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var m listingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %d", domain.ErrNotFound, id)
		}
		return nil, domain.Infra("listing.get", tx.Error)
	}
	return toDomainListing(m), nil
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID int64) ([]domain.Listing, error) {
	var rows []listingModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, domain.Infra("listing.find_by_owner", tx.Error)
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

// Update writes the full listing back, guarded by an updated_at
// compare-and-swap so concurrent edits surface as conflicts instead of
// silently losing one of the writes.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing, expectedUpdatedAt time.Time) error {
	m := toListingModel(l)
	tx := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("id = ? AND updated_at = ?", m.ID, expectedUpdatedAt).
		Updates(map[string]any{
			"title":             m.Title,
			"description":       m.Description,
			"property_type":     m.PropertyType,
			"category":          m.Category,
			"price_amount":      m.PriceAmount,
			"price_currency":    m.PriceCurrency,
			"deposit_amount":    m.DepositAmount,
			"deposit_currency":  m.DepositCurrency,
			"city":              m.City,
			"district":          m.District,
			"full_address":      m.FullAddress,
			"latitude":          m.Latitude,
			"longitude":         m.Longitude,
			"area":              m.Area,
			"room_count":        m.RoomCount,
			"furnished":         m.Furnished,
			"amenities":         m.Amenities,
			"photos":            m.Photos,
			"available":         m.Available,
			"available_from":    m.AvailableFrom,
			"moderation_status": m.ModerationStatus,
			"updated_at":        m.UpdatedAt,
		})
	if tx.Error != nil {
		return domain.Infra("listing.update", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: listing %d was modified concurrently", domain.ErrConflict, l.ID)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&listingModel{}, id)
	if tx.Error != nil {
		return domain.Infra("listing.delete", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: listing %d", domain.ErrNotFound, id)
	}
	return nil
}

// Search applies every filter that is set, AND-combined, and returns one
// page plus the total match count.
func (r *ListingRepository) Search(ctx context.Context, f ListingFilters) ([]domain.Listing, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("available = ?", true).
		Where("moderation_status = ?", string(domain.ModerationApproved))

	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_amount >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_amount <= ?", f.MaxPrice)
	}
	if f.MinRooms > 0 {
		q = q.Where("room_count >= ?", f.MinRooms)
	}
	if f.MinArea > 0 {
		q = q.Where("area >= ?", f.MinArea)
	}
	if f.Furnished != nil {
		q = q.Where("furnished = ?", *f.Furnished)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Infra("listing.search", err)
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("price_amount ASC")
	case "price_desc":
		q = q.Order("price_amount DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var rows []listingModel
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.Infra("listing.search", err)
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, total, nil
}

// FindPendingModeration returns one page of listings awaiting review,
// oldest first, plus the total queue size.
func (r *ListingRepository) FindPendingModeration(ctx context.Context, page, limit int) ([]domain.Listing, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("moderation_status = ?", string(domain.ModerationPending))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Infra("listing.pending_moderation", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []listingModel
	if err := q.Order("created_at ASC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.Infra("listing.pending_moderation", err)
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, total, nil
}

func (r *ListingRepository) IncrementViewCount(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if tx.Error != nil {
		return domain.Infra("listing.increment_view_count", tx.Error)
	}
	return nil
}
