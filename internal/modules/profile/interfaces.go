package profile

import (
	"context"

	"renthub/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetStudentProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error)
	SaveStudentProfile(ctx context.Context, p *domain.StudentProfile) error
	GetLandlordProfile(ctx context.Context, userID int64) (*domain.LandlordProfile, error)
}
