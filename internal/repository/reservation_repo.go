package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renthub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ListingID       int64     `gorm:"column:listing_id;index"`
	TenantID        int64     `gorm:"column:tenant_id;index"`
	OwnerID         int64     `gorm:"column:owner_id;index"`
	StartDate       time.Time `gorm:"column:start_date"`
	EndDate         time.Time `gorm:"column:end_date"`
	OccupantCount   int       `gorm:"column:occupant_count"`
	TotalAmount     float64   `gorm:"column:total_amount"`
	TotalCurrency   string    `gorm:"column:total_currency"`
	DepositAmount   float64   `gorm:"column:deposit_amount"`
	DepositCurrency string    `gorm:"column:deposit_currency"`
	Message         *string   `gorm:"column:message;type:text"`
	Status          string    `gorm:"column:status;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var message string
	if m.Message != nil {
		message = *m.Message
	}

	return &domain.Reservation{
		ID:            m.ID,
		ListingID:     m.ListingID,
		TenantID:      m.TenantID,
		OwnerID:       m.OwnerID,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		OccupantCount: m.OccupantCount,
		TotalPrice:    domain.Price{Amount: m.TotalAmount, Currency: m.TotalCurrency},
		Deposit:       domain.Price{Amount: m.DepositAmount, Currency: m.DepositCurrency},
		Message:       message,
		Status:        domain.ReservationStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var message *string
	if r.Message != "" {
		v := r.Message
		message = &v
	}

	return reservationModel{
		ID:              r.ID,
		ListingID:       r.ListingID,
		TenantID:        r.TenantID,
		OwnerID:         r.OwnerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		OccupantCount:   r.OccupantCount,
		TotalAmount:     r.TotalPrice.Amount,
		TotalCurrency:   r.TotalPrice.Currency,
		DepositAmount:   r.Deposit.Amount,
		DepositCurrency: r.Deposit.Currency,
		Message:         message,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// CreateIfAvailable inserts the reservation only if no pending or accepted
// reservation on the same listing overlaps its half-open date range. The
// overlap count and the insert run inside one transaction so two
// concurrent overlapping requests cannot both pass the check. On Postgres
// a violation of the idx_no_double_booking exclusion constraint is mapped
// to the same conflict error as a second line of defence.
func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&reservationModel{}).
			Where("listing_id = ?", m.ListingID).
			Where("status IN ?", []string{string(domain.ReservationPending), string(domain.ReservationAccepted)}).
			Where("start_date < ? AND end_date > ?", m.EndDate, m.StartDate).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return fmt.Errorf("%w: dates unavailable", domain.ErrConflict)
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return fmt.Errorf("%w: dates unavailable", domain.ErrConflict)
		}
		return domain.Infra("reservation.create", err)
	}

	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", domain.ErrNotFound, id)
		}
		return nil, domain.Infra("reservation.get", tx.Error)
	}
	return toDomainReservation(m), nil
}

// FindConflicting returns pending or accepted reservations on the listing
// whose [start_date, end_date) range intersects the given one. excludeID
// skips one reservation, for date-change checks against itself.
func (r *ReservationRepository) FindConflicting(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Where("status IN ?", []string{string(domain.ReservationPending), string(domain.ReservationAccepted)}).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []reservationModel
	if err := q.Order("start_date").Find(&rows).Error; err != nil {
		return nil, domain.Infra("reservation.find_conflicting", err)
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) FindByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Reservation, error) {
	return r.findBy(ctx, "tenant_id", tenantID, limit, offset)
}

func (r *ReservationRepository) FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Reservation, error) {
	return r.findBy(ctx, "owner_id", ownerID, limit, offset)
}

func (r *ReservationRepository) findBy(ctx context.Context, column string, id int64, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where(column+" = ?", id).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, domain.Infra("reservation.find_by_"+column, tx.Error)
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// Update persists a state transition, guarded by an updated_at
// compare-and-swap. Zero rows affected means the reservation changed
// underneath the caller.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation, expectedUpdatedAt time.Time) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND updated_at = ?", m.ID, expectedUpdatedAt).
		Updates(map[string]any{
			"start_date": m.StartDate,
			"end_date":   m.EndDate,
			"status":     m.Status,
			"updated_at": m.UpdatedAt,
		})
	if tx.Error != nil {
		return domain.Infra("reservation.update", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: reservation %d was modified concurrently", domain.ErrConflict, res.ID)
	}
	return nil
}

// UpdateDatesIfAvailable moves a reservation to the dates already set on
// it, re-running the overlap count against every other live reservation on
// the listing inside the same transaction as the CAS write. Without that,
// a date change racing an overlapping insert could commit against the old
// dates and break the no-overlap invariant.
func (r *ReservationRepository) UpdateDatesIfAvailable(ctx context.Context, res *domain.Reservation, expectedUpdatedAt time.Time) error {
	m := toReservationModel(res)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&reservationModel{}).
			Where("listing_id = ?", m.ListingID).
			Where("id <> ?", m.ID).
			Where("status IN ?", []string{string(domain.ReservationPending), string(domain.ReservationAccepted)}).
			Where("start_date < ? AND end_date > ?", m.EndDate, m.StartDate).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return fmt.Errorf("%w: dates unavailable", domain.ErrConflict)
		}

		upd := tx.Model(&reservationModel{}).
			Where("id = ? AND updated_at = ?", m.ID, expectedUpdatedAt).
			Updates(map[string]any{
				"start_date": m.StartDate,
				"end_date":   m.EndDate,
				"updated_at": m.UpdatedAt,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("%w: reservation %d was modified concurrently", domain.ErrConflict, res.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return fmt.Errorf("%w: dates unavailable", domain.ErrConflict)
		}
		return domain.Infra("reservation.update_dates", err)
	}
	return nil
}

// Delete removes a reservation outright. Admin tooling only; the normal
// lifecycle ends in a terminal status, never a delete.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&reservationModel{}, id)
	if tx.Error != nil {
		return domain.Infra("reservation.delete", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: reservation %d", domain.ErrNotFound, id)
	}
	return nil
}
