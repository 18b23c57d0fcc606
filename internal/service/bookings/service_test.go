package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) TransitionStatus(ctx context.Context, id int64, next domain.BookingStatus, reason *string) error {
	return m.Called(ctx, id, next, reason).Error(0)
}

type mockServicePointRepo struct {
	mock.Mock
}

func (m *mockServicePointRepo) GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePoint), args.Error(1)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error {
	return m.Called(ctx, id, next).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error {
	return m.Called(ctx, key, payload).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc       *Service
	bookings  *mockBookingRepo
	points    *mockServicePointRepo
	schedules *mockScheduleRepo
	publisher *mockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  &mockBookingRepo{},
		points:    &mockServicePointRepo{},
		schedules: &mockScheduleRepo{},
		publisher: &mockPublisher{},
	}
	var m *metrics.Metrics
	f.svc = NewService(f.bookings, f.points, f.schedules, passthroughTx{}, f.publisher, m, logger.Nop())
	f.points.On("GetByID", mock.Anything, int64(1)).Return(&domain.ServicePoint{ID: 1, PartnerID: 5}, nil)
	return f
}

func clientActor(id int64) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleClient}
}

func partnerActor(partnerID int64) domain.Actor {
	return domain.Actor{UserID: 500, Role: domain.RolePartner, PartnerID: &partnerID}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:             7,
		Reference:      "3f2b7c1e-0000-4000-8000-000000000007",
		ServicePointID: 1,
		ScheduleID:     ptr.Ptr(int64(70)),
		UserID:         ptr.Ptr(int64(42)),
		BookingDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "10:30",
		Status:         domain.BookingConfirmed,
		CustomerName:   "Иван",
		CustomerPhone:  "+79990000000",
	}
}

func TestService_GetByID_Access(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)

	_, err := f.svc.GetByID(context.Background(), clientActor(42), 7)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), partnerActor(5), 7)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), clientActor(43), 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), partnerActor(6), 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByReference_NotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByReference", mock.Anything, "missing").Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.GetByReference(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel_MovesScheduleAndPublishes(t *testing.T) {
	f := newFixture()
	reason := "планы изменились"
	cancelled := confirmedBooking()
	cancelled.Status = domain.BookingCancelled
	cancelled.CancellationReason = &reason

	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil).Once()
	f.bookings.On("TransitionStatus", mock.Anything, int64(7), domain.BookingCancelled, &reason).Return(nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(70), domain.ScheduleCancelled).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(cancelled, nil).Once()
	f.publisher.On("Publish", mock.Anything, notifications.BookingCancelled, mock.MatchedBy(func(e notifications.BookingEvent) bool {
		return e.BookingID == 7 && e.Status == "cancelled" && e.Reason != nil
	})).Return(nil)

	resp, err := f.svc.Cancel(context.Background(), clientActor(42), 7, &models.CancelBookingRequest{CancellationReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	f.schedules.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestService_Cancel_ScheduleAlreadyTerminal(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	f.bookings.On("TransitionStatus", mock.Anything, int64(7), domain.BookingCancelled, (*string)(nil)).Return(nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(70), domain.ScheduleCancelled).Return(scheduleRepo.ErrStatusConflict)
	f.publisher.On("Publish", mock.Anything, notifications.BookingCancelled, mock.Anything).Return(nil)

	_, err := f.svc.Cancel(context.Background(), partnerActor(5), 7, &models.CancelBookingRequest{})
	require.NoError(t, err)
}

func TestService_Cancel_Rejected(t *testing.T) {
	f := newFixture()
	completed := confirmedBooking()
	completed.Status = domain.BookingCompleted
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(completed, nil)

	_, err := f.svc.Cancel(context.Background(), clientActor(42), 7, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	f.bookings.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_Conflict(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	f.bookings.On("TransitionStatus", mock.Anything, int64(7), domain.BookingCancelled, (*string)(nil)).Return(bookingRepo.ErrStatusConflict)

	_, err := f.svc.Cancel(context.Background(), clientActor(42), 7, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrStatusConflict)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Complete(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)

	// клиент не может завершить бронирование
	_, err := f.svc.Complete(context.Background(), clientActor(42), 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	f.bookings.On("TransitionStatus", mock.Anything, int64(7), domain.BookingCompleted, (*string)(nil)).Return(nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(70), domain.ScheduleCompleted).Return(nil)
	f.publisher.On("Publish", mock.Anything, notifications.BookingCompleted, mock.Anything).Return(nil)

	resp, err := f.svc.Complete(context.Background(), partnerActor(5), 7)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestService_GetServicePointBookings(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	f.bookings.On("List", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return *filter.ServicePointID == 1 && filter.Status != nil && *filter.Status == domain.BookingConfirmed
	})).Return([]*domain.Booking{confirmedBooking()}, nil)

	resp, err := f.svc.GetServicePointBookings(context.Background(), partnerActor(5), &models.GetServicePointBookingsRequest{
		ServicePointID: 1,
		StartDate:      &start,
		EndDate:        &end,
		Status:         ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetServicePointBookings(context.Background(), partnerActor(5), &models.GetServicePointBookingsRequest{
		ServicePointID: 1,
		StartDate:      &end,
		EndDate:        &start,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.GetServicePointBookings(context.Background(), clientActor(42), &models.GetServicePointBookingsRequest{ServicePointID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetUserBookings(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.UserID != nil && *filter.UserID == 42 && filter.IncludeCancelled
	})).Return([]*domain.Booking{confirmedBooking()}, nil)

	resp, err := f.svc.GetUserBookings(context.Background(), clientActor(42), &models.GetUserBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetUserBookings(context.Background(), clientActor(42), &models.GetUserBookingsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
