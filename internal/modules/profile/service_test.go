package profile

import (
	"context"
	"testing"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetStudentProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}

func (m *MockUserRepository) SaveStudentProfile(ctx context.Context, p *domain.StudentProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockUserRepository) GetLandlordProfile(ctx context.Context, userID int64) (*domain.LandlordProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandlordProfile), args.Error(1)
}

func TestService_GetProfile_MissingSideRecords(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleTenant}, nil)
	mockUsers.On("GetStudentProfile", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)
	mockUsers.On("GetLandlordProfile", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

	p, err := service.GetProfile(context.Background(), 1)
	assert.NoError(t, err)
	assert.NotNil(t, p.User)
	assert.Nil(t, p.Student)
	assert.Nil(t, p.Landlord)
}

func TestService_UpdateStudentProfile_NotAStudent(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleTenant}, nil)

	uni := "UCAD"
	_, err := service.UpdateStudentProfile(context.Background(), 1, UpdateStudentProfileRequest{University: &uni})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockUsers.AssertNotCalled(t, "SaveStudentProfile", mock.Anything, mock.Anything)
}

func TestService_UpdateStudentProfile_CreatesOnFirstWrite(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleStudent}, nil)
	mockUsers.On("GetStudentProfile", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)
	mockUsers.On("SaveStudentProfile", mock.Anything, mock.Anything).Return(nil)

	uni := "UCAD"
	docs := []string{"/static/uploads/docs/card.pdf"}
	p, err := service.UpdateStudentProfile(context.Background(), 1, UpdateStudentProfileRequest{
		University:   &uni,
		DocumentURLs: &docs,
	})
	assert.NoError(t, err)
	assert.Equal(t, "UCAD", p.University)
	assert.Equal(t, docs, p.DocumentURLs)
	mockUsers.AssertExpectations(t)
}

func TestService_UpdateStudentProfile_EmptyUniversity(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleStudent}, nil)
	mockUsers.On("GetStudentProfile", mock.Anything, int64(1)).Return(&domain.StudentProfile{UserID: 1, University: "UCAD"}, nil)

	empty := "  "
	_, err := service.UpdateStudentProfile(context.Background(), 1, UpdateStudentProfileRequest{University: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
	mockUsers.AssertNotCalled(t, "SaveStudentProfile", mock.Anything, mock.Anything)
}
