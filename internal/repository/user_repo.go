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

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Phone:     m.Phone,
		Role:      domain.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userModel{
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return domain.Infra("user.create", tx.Error)
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return nil, domain.Infra("user.get", tx.Error)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
		}
		return nil, domain.Infra("user.get_by_email", tx.Error)
	}
	return toDomainUser(m), nil
}

type studentProfileModel struct {
	UserID       int64     `gorm:"column:user_id;primaryKey"`
	University   string    `gorm:"column:university"`
	StudentCard  string    `gorm:"column:student_card"`
	DocumentURLs string    `gorm:"column:document_urls;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (studentProfileModel) TableName() string { return "student_profiles" }

func toDomainStudentProfile(m studentProfileModel) *domain.StudentProfile {
	var docs []string
	if m.DocumentURLs != "" {
		_ = json.Unmarshal([]byte(m.DocumentURLs), &docs)
	}
	return &domain.StudentProfile{
		UserID:       m.UserID,
		University:   m.University,
		StudentCard:  m.StudentCard,
		DocumentURLs: docs,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *UserRepository) GetStudentProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	var m studentProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student profile for user %d", domain.ErrNotFound, userID)
		}
		return nil, domain.Infra("user.get_student_profile", tx.Error)
	}
	return toDomainStudentProfile(m), nil
}

func (r *UserRepository) SaveStudentProfile(ctx context.Context, p *domain.StudentProfile) error {
	docs, _ := json.Marshal(p.DocumentURLs)
	m := studentProfileModel{
		UserID:       p.UserID,
		University:   p.University,
		StudentCard:  p.StudentCard,
		DocumentURLs: string(docs),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	var existing studentProfileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
			m.UpdatedAt = m.CreatedAt
		}
		if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
			return domain.Infra("user.save_student_profile", tx.Error)
		}
	case err != nil:
		return domain.Infra("user.save_student_profile", err)
	default:
		tx := r.db.WithContext(ctx).
			Model(&studentProfileModel{}).
			Where("user_id = ?", p.UserID).
			Updates(map[string]any{
				"university":    m.University,
				"student_card":  m.StudentCard,
				"document_urls": m.DocumentURLs,
				"updated_at":    m.UpdatedAt,
			})
		if tx.Error != nil {
			return domain.Infra("user.save_student_profile", tx.Error)
		}
	}
	return nil
}

type landlordProfileModel struct {
	UserID     int64      `gorm:"column:user_id;primaryKey"`
	Company    string     `gorm:"column:company"`
	Verified   bool       `gorm:"column:verified"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (landlordProfileModel) TableName() string { return "landlord_profiles" }

func (r *UserRepository) GetLandlordProfile(ctx context.Context, userID int64) (*domain.LandlordProfile, error) {
	var m landlordProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: landlord profile for user %d", domain.ErrNotFound, userID)
		}
		return nil, domain.Infra("user.get_landlord_profile", tx.Error)
	}
	return &domain.LandlordProfile{
		UserID:     m.UserID,
		Company:    m.Company,
		Verified:   m.Verified,
		VerifiedAt: m.VerifiedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}
