package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renthub/internal/domain"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// GetProfile returns the account together with whichever role profile
// exists. Missing side records are simply absent, not errors.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ProfileResponse{User: u}

	if student, err := s.users.GetStudentProfile(ctx, userID); err == nil {
		out.Student = student
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if landlord, err := s.users.GetLandlordProfile(ctx, userID); err == nil {
		out.Landlord = landlord
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return out, nil
}

// UpdateStudentProfile creates or amends the student side record. Only
// users with the student role carry one.
func (s *Service) UpdateStudentProfile(ctx context.Context, userID int64, req UpdateStudentProfileRequest) (*domain.StudentProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%w: only students carry a student profile", domain.ErrForbidden)
	}

	p, err := s.users.GetStudentProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now().UTC()
		p = &domain.StudentProfile{UserID: userID, CreatedAt: now, UpdatedAt: now}
	} else if err != nil {
		return nil, err
	}

	if req.University != nil {
		if err := p.UpdateUniversity(*req.University); err != nil {
			return nil, err
		}
	}
	if req.StudentCard != nil {
		p.StudentCard = *req.StudentCard
		p.UpdatedAt = time.Now().UTC()
	}
	if req.DocumentURLs != nil {
		if err := p.SetDocuments(*req.DocumentURLs); err != nil {
			return nil, err
		}
	}

	if err := s.users.SaveStudentProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
