package schedules

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-TireService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/service/schedules/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) List(ctx context.Context, filter domain.SchedulesFilter) ([]*domain.Schedule, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error {
	return m.Called(ctx, id, next).Error(0)
}

func (m *mockScheduleRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
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

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error {
	return m.Called(ctx, key, payload).Error(0)
}

type fixture struct {
	svc       *Service
	schedules *mockScheduleRepo
	points    *mockServicePointRepo
	bookings  *mockBookingRepo
	publisher *mockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		schedules: &mockScheduleRepo{},
		points:    &mockServicePointRepo{},
		bookings:  &mockBookingRepo{},
		publisher: &mockPublisher{},
	}
	f.svc = NewService(f.schedules, f.points, f.bookings, f.publisher, logger.Nop())
	f.points.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServicePoint{ID: 1, PartnerID: 5, Name: "Точка", Address: "Адрес"}, nil)
	return f
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func TestService_ChangeStatus(t *testing.T) {
	f := newFixture()
	schedule := &domain.Schedule{ID: 10, ServicePointID: 1, PostNumber: 1, Status: domain.ScheduleAvailable, StartTime: "09:00", EndTime: "09:30"}

	f.schedules.On("GetByID", mock.Anything, int64(10)).Return(schedule, nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(10), domain.ScheduleBooked).Return(nil)
	f.publisher.On("Publish", mock.Anything, notifications.ScheduleStatusChange, mock.Anything).Return(nil)

	resp, err := f.svc.ChangeStatus(context.Background(), admin, 10, &models.ChangeStatusRequest{Status: "booked"})
	require.NoError(t, err)
	assert.Equal(t, "booked", resp.Status)
	f.publisher.AssertExpectations(t)
}

func TestService_ChangeStatus_Rules(t *testing.T) {
	f := newFixture()

	f.schedules.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Schedule{ID: 11, ServicePointID: 1, Status: domain.ScheduleCompleted}, nil)
	_, err := f.svc.ChangeStatus(context.Background(), admin, 11, &models.ChangeStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.schedules.On("GetByID", mock.Anything, int64(12)).
		Return(&domain.Schedule{ID: 12, ServicePointID: 1, Status: domain.ScheduleAvailable}, nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(12), domain.ScheduleBooked).Return(scheduleRepo.ErrStatusConflict)
	_, err = f.svc.ChangeStatus(context.Background(), admin, 12, &models.ChangeStatusRequest{Status: "booked"})
	assert.ErrorIs(t, err, ErrStatusConflict)

	_, err = f.svc.ChangeStatus(context.Background(), admin, 12, &models.ChangeStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	otherPartner := int64(6)
	_, err = f.svc.ChangeStatus(context.Background(), domain.Actor{Role: domain.RolePartner, PartnerID: &otherPartner}, 12,
		&models.ChangeStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	f.schedules.On("GetByID", mock.Anything, int64(10)).Return(&domain.Schedule{ID: 10, ServicePointID: 1}, nil)
	f.schedules.On("SoftDelete", mock.Anything, int64(10)).Return(scheduleRepo.ErrHasActiveBookings)

	err := f.svc.Delete(context.Background(), admin, 10)
	assert.ErrorIs(t, err, ErrHasActiveBookings)
}

func TestService_Export(t *testing.T) {
	f := newFixture()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	scheduleID := int64(10)

	f.schedules.On("List", mock.Anything, mock.Anything).Return([]*domain.Schedule{
		{ID: 10, ServicePointID: 1, PostNumber: 1, Date: date, StartTime: "09:00", EndTime: "09:30", Status: domain.ScheduleBooked},
		{ID: 11, ServicePointID: 1, PostNumber: 2, Date: date, StartTime: "09:00", EndTime: "09:30", Status: domain.ScheduleAvailable},
	}, nil)
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 1, ScheduleID: &scheduleID, Status: domain.BookingConfirmed, CustomerName: "Иван", CustomerPhone: "+7900", Reference: "ref-1"},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), admin, 1, date, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("2025-03-10")
	require.NoError(t, err)
	var customers []string
	for _, row := range rows {
		if len(row) > 4 && row[0] == "1" {
			customers = append(customers, row[4])
		}
	}
	assert.Equal(t, []string{"Иван"}, customers)
}
