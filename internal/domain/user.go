package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	RoleTenant   UserRole = "tenant"
	RoleLandlord UserRole = "landlord"
	RoleStudent  UserRole = "student"
	RoleAdmin    UserRole = "admin"
)

// User is the local projection of an account managed by the external auth
// provider. Credentials never live here; role-specific data sits in side
// records joined by user id.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentProfile carries the student-housing extras for users with the
// student role. Fields change through setters only.
type StudentProfile struct {
	UserID       int64     `json:"user_id"`
	University   string    `json:"university"`
	StudentCard  string    `json:"student_card,omitempty"`
	DocumentURLs []string  `json:"document_urls,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *StudentProfile) UpdateUniversity(university string) error {
	if strings.TrimSpace(university) == "" {
		return fmt.Errorf("%w: university is required", ErrValidation)
	}
	p.University = university
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *StudentProfile) SetDocuments(urls []string) error {
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("%w: document url must not be empty", ErrValidation)
		}
	}
	p.DocumentURLs = urls
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// LandlordProfile carries owner-side data for users with the landlord role.
type LandlordProfile struct {
	UserID     int64      `json:"user_id"`
	Company    string     `json:"company,omitempty"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
