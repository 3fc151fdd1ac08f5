package booking

import (
	"context"
	"testing"
	"time"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateIfAvailable(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if r != nil && args.Error(0) == nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindConflicting(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, listingID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *domain.Reservation, expectedUpdatedAt time.Time) error {
	args := m.Called(ctx, r, expectedUpdatedAt)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateDatesIfAvailable(ctx context.Context, r *domain.Reservation, expectedUpdatedAt time.Time) error {
	args := m.Called(ctx, r, expectedUpdatedAt)
	return args.Error(0)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyReservationCreated(ctx context.Context, ownerID, reservationID, listingID int64, start time.Time) error {
	args := m.Called(ctx, ownerID, reservationID, listingID, start)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyReservationDecided(ctx context.Context, tenantID, reservationID int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, tenantID, reservationID, status)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyReservationCancelled(ctx context.Context, userID, reservationID int64) error {
	args := m.Called(ctx, userID, reservationID)
	return args.Error(0)
}

func price(t *testing.T, amount float64) domain.Price {
	t.Helper()
	p, err := domain.NewPrice(amount, domain.DefaultCurrency)
	assert.NoError(t, err)
	return p
}

func availableListing(t *testing.T) *domain.Listing {
	return &domain.Listing{
		ID:               42,
		OwnerID:          1,
		Title:            "Two-room apartment",
		Price:            price(t, 10000),
		Deposit:          price(t, 50000),
		Available:        true,
		ModerationStatus: domain.ModerationApproved,
	}
}

func TestService_CreateReservation_Success(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)
	mockNotifs := new(MockNotificationSender)

	start := time.Now().UTC().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 3)

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(availableListing(t), nil)
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleTenant}, nil)
	mockReservations.On("FindConflicting", mock.Anything, int64(42), start, end, int64(0)).Return([]domain.Reservation{}, nil)
	mockReservations.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyReservationCreated", mock.Anything, int64(1), int64(999), int64(42), start).Return(nil)

	service := NewService(mockReservations, mockListings, mockUsers, mockNotifs)

	res, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     start,
		EndDate:       end,
		OccupantCount: 2,
		Message:       "Looking forward to it",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	// 3 days at 10,000 per day
	assert.Equal(t, 30000.0, res.TotalPrice.Amount)
	assert.Equal(t, 50000.0, res.Deposit.Amount)
	assert.Equal(t, domain.ReservationPending, res.Status)
	mockReservations.AssertExpectations(t)
}

func TestService_CreateReservation_PartialDayRoundsUp(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	start := time.Now().UTC().AddDate(0, 1, 0)
	end := start.Add(36 * time.Hour) // one and a half days

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(availableListing(t), nil)
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	mockReservations.On("FindConflicting", mock.Anything, int64(42), start, end, int64(0)).Return([]domain.Reservation{}, nil)
	mockReservations.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	res, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     start,
		EndDate:       end,
		OccupantCount: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, 20000.0, res.TotalPrice.Amount)
}

func TestService_CreateReservation_ListingNotFound(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	_, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     time.Now().UTC().AddDate(0, 1, 0),
		EndDate:       time.Now().UTC().AddDate(0, 1, 3),
		OccupantCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CreateReservation_ListingUnavailable(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	l := availableListing(t)
	l.Available = false
	mockListings.On("GetByID", mock.Anything, int64(42)).Return(l, nil)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	_, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     time.Now().UTC().AddDate(0, 1, 0),
		EndDate:       time.Now().UTC().AddDate(0, 1, 3),
		OccupantCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_CreateReservation_SelfBooking(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(availableListing(t), nil)
	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleLandlord}, nil)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	// tenant 1 owns listing 42
	_, err := service.CreateReservation(context.Background(), 1, CreateReservationRequest{
		ListingID:     42,
		StartDate:     time.Now().UTC().AddDate(0, 1, 0),
		EndDate:       time.Now().UTC().AddDate(0, 1, 3),
		OccupantCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_CreateReservation_OverlapConflict(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	start := time.Now().UTC().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 4)

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(availableListing(t), nil)
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	mockReservations.On("FindConflicting", mock.Anything, int64(42), start, end, int64(0)).
		Return([]domain.Reservation{{ID: 5, Status: domain.ReservationAccepted}}, nil)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	_, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     start,
		EndDate:       end,
		OccupantCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	mockReservations.AssertNotCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything)
}

func TestService_CreateReservation_RaceLostAtInsert(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockListings := new(MockListingReader)
	mockUsers := new(MockUserReader)

	start := time.Now().UTC().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 4)

	mockListings.On("GetByID", mock.Anything, int64(42)).Return(availableListing(t), nil)
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	mockReservations.On("FindConflicting", mock.Anything, int64(42), start, end, int64(0)).Return([]domain.Reservation{}, nil)
	// a concurrent booking won the transactional insert
	mockReservations.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	service := NewService(mockReservations, mockListings, mockUsers, nil)

	_, err := service.CreateReservation(context.Background(), 7, CreateReservationRequest{
		ListingID:     42,
		StartDate:     start,
		EndDate:       end,
		OccupantCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func pendingReservation(t *testing.T) *domain.Reservation {
	t.Helper()
	start := time.Now().UTC().AddDate(0, 1, 0)
	res, err := domain.NewReservation(42, 7, 1, start, start.AddDate(0, 0, 3), 1,
		price(t, 30000), price(t, 50000), "")
	assert.NoError(t, err)
	res.ID = 123
	return res
}

func TestService_Accept_OwnerOnly(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	service := NewService(mockReservations, nil, nil, nil)

	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(pendingReservation(t), nil)

	_, err := service.Accept(context.Background(), 123, 7) // tenant, not owner
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Accept_PersistsWithCAS(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)
	service := NewService(mockReservations, nil, nil, mockNotifs)

	res := pendingReservation(t)
	prev := res.UpdatedAt
	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)
	mockReservations.On("Update", mock.Anything, res, prev).Return(nil)
	mockNotifs.On("NotifyReservationDecided", mock.Anything, int64(7), int64(123), domain.ReservationAccepted).Return(nil)

	out, err := service.Accept(context.Background(), 123, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationAccepted, out.Status)
	mockReservations.AssertExpectations(t)
}

func TestService_RejectThenAcceptFails(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)
	service := NewService(mockReservations, nil, nil, mockNotifs)

	res := pendingReservation(t)
	prev := res.UpdatedAt
	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)
	mockReservations.On("Update", mock.Anything, res, prev).Return(nil)
	mockNotifs.On("NotifyReservationDecided", mock.Anything, int64(7), int64(123), domain.ReservationRejected).Return(nil)

	out, err := service.Reject(context.Background(), 123, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationRejected, out.Status)

	_, err = service.Accept(context.Background(), 123, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_Complete_BeforeEndDate(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	service := NewService(mockReservations, nil, nil, nil)

	res := pendingReservation(t)
	assert.NoError(t, res.Accept())
	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)

	_, err := service.Complete(context.Background(), 123, 1)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	mockReservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_StaleWriteSurfacesConflict(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	service := NewService(mockReservations, nil, nil, nil)

	res := pendingReservation(t)
	prev := res.UpdatedAt
	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)
	mockReservations.On("Update", mock.Anything, res, prev).Return(domain.ErrConflict)

	_, err := service.Cancel(context.Background(), 123, 7)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_UpdateDates_PersistsAtomically(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	service := NewService(mockReservations, nil, nil, nil)

	res := pendingReservation(t)
	prev := res.UpdatedAt
	newStart := res.StartDate.AddDate(0, 0, 10)
	newEnd := newStart.AddDate(0, 0, 2)

	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)
	mockReservations.On("UpdateDatesIfAvailable", mock.Anything, res, prev).Return(nil)

	out, err := service.UpdateDates(context.Background(), 123, 7, UpdateDatesRequest{StartDate: newStart, EndDate: newEnd})
	assert.NoError(t, err)
	assert.Equal(t, newStart, out.StartDate)
	mockReservations.AssertExpectations(t)
	// the plain CAS update must not be used for date moves
	mockReservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateDates_ConflictFromRepository(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	service := NewService(mockReservations, nil, nil, nil)

	res := pendingReservation(t)
	prev := res.UpdatedAt
	newStart := res.StartDate.AddDate(0, 0, 10)
	newEnd := newStart.AddDate(0, 0, 2)

	mockReservations.On("GetByID", mock.Anything, int64(123)).Return(res, nil)
	// a concurrent overlapping booking committed first
	mockReservations.On("UpdateDatesIfAvailable", mock.Anything, res, prev).Return(domain.ErrConflict)

	_, err := service.UpdateDates(context.Background(), 123, 7, UpdateDatesRequest{StartDate: newStart, EndDate: newEnd})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
