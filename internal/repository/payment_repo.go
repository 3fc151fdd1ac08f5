package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	ReservationID  int64      `gorm:"column:reservation_id;index"`
	TenantID       int64      `gorm:"column:tenant_id;index"`
	OwnerID        int64      `gorm:"column:owner_id;index"`
	Amount         float64    `gorm:"column:amount"`
	Currency       string     `gorm:"column:currency"`
	Method         string     `gorm:"column:method"`
	Kind           string     `gorm:"column:kind;index"`
	Status         string     `gorm:"column:status;index"`
	TransactionRef *string    `gorm:"column:transaction_ref"`
	ValidatedAt    *time.Time `gorm:"column:validated_at"`
	FailureReason  *string    `gorm:"column:failure_reason;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	var ref, reason string
	if m.TransactionRef != nil {
		ref = *m.TransactionRef
	}
	if m.FailureReason != nil {
		reason = *m.FailureReason
	}

	return &domain.Payment{
		ID:             m.ID,
		ReservationID:  m.ReservationID,
		TenantID:       m.TenantID,
		OwnerID:        m.OwnerID,
		Amount:         domain.Price{Amount: m.Amount, Currency: m.Currency},
		Method:         domain.PaymentMethod(m.Method),
		Kind:           domain.PaymentKind(m.Kind),
		Status:         domain.PaymentStatus(m.Status),
		TransactionRef: ref,
		ValidatedAt:    m.ValidatedAt,
		FailureReason:  reason,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	var ref, reason *string
	if p.TransactionRef != "" {
		v := p.TransactionRef
		ref = &v
	}
	if p.FailureReason != "" {
		v := p.FailureReason
		reason = &v
	}

	return paymentModel{
		ID:             p.ID,
		ReservationID:  p.ReservationID,
		TenantID:       p.TenantID,
		OwnerID:        p.OwnerID,
		Amount:         p.Amount.Amount,
		Currency:       p.Amount.Currency,
		Method:         string(p.Method),
		Kind:           string(p.Kind),
		Status:         string(p.Status),
		TransactionRef: ref,
		ValidatedAt:    p.ValidatedAt,
		FailureReason:  reason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return domain.Infra("payment.create", tx.Error)
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
		}
		return nil, domain.Infra("payment.get", tx.Error)
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) FindByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, domain.Infra("payment.find_by_reservation", tx.Error)
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// HasDepositRefund reports whether a deposit-refund payment already exists
// for the reservation in pending or validated state. Guards the
// restitution use case against double refunds.
func (r *PaymentRepository) HasDepositRefund(ctx context.Context, reservationID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("reservation_id = ?", reservationID).
		Where("kind = ?", string(domain.PaymentKindDepositRefund)).
		Where("status IN ?", []string{string(domain.PaymentPending), string(domain.PaymentValidated)}).
		Count(&cnt)
	if tx.Error != nil {
		return false, domain.Infra("payment.has_deposit_refund", tx.Error)
	}
	return cnt > 0, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment, expectedUpdatedAt time.Time) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ? AND updated_at = ?", m.ID, expectedUpdatedAt).
		Updates(map[string]any{
			"status":          m.Status,
			"transaction_ref": m.TransactionRef,
			"validated_at":    m.ValidatedAt,
			"failure_reason":  m.FailureReason,
			"updated_at":      m.UpdatedAt,
		})
	if tx.Error != nil {
		return domain.Infra("payment.update", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: payment %d was modified concurrently", domain.ErrConflict, p.ID)
	}
	return nil
}
