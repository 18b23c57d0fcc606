package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/integrations/userservice"
	"github.com/m04kA/SMC-TireService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
	"github.com/m04kA/SMC-TireService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
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

func (m *mockScheduleRepo) FindAvailable(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (*domain.Schedule, error) {
	args := m.Called(ctx, servicePointID, date, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) CountByStart(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (int, error) {
	args := m.Called(ctx, servicePointID, date, start)
	return args.Int(0), args.Error(1)
}

func (m *mockScheduleRepo) TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error {
	return m.Called(ctx, id, next).Error(0)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsSlotAvailable(ctx context.Context, servicePointID int64, date time.Time, at types.TimeString) (*check_availability.Result, error) {
	args := m.Called(ctx, servicePointID, date, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*check_availability.Result), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error {
	return m.Called(ctx, key, payload).Error(0)
}

type mockCarProvider struct {
	mock.Mock
}

func (m *mockCarProvider) GetSelectedCarWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Car, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.Car), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// 2025-03-10 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	bookings  *mockBookingRepo
	points    *mockServicePointRepo
	schedules *mockScheduleRepo
	checker   *mockChecker
	publisher *mockPublisher
	cars      *mockCarProvider
}

func newFixture(tx TransactionManager) *fixture {
	f := &fixture{
		bookings:  &mockBookingRepo{},
		points:    &mockServicePointRepo{},
		schedules: &mockScheduleRepo{},
		checker:   &mockChecker{},
		publisher: &mockPublisher{},
		cars:      &mockCarProvider{},
	}
	var m *metrics.Metrics
	f.uc = NewUseCase(f.bookings, f.points, f.schedules, f.checker, tx, f.publisher, f.cars, m,
		Options{AdvanceBookingDays: 30, MinBookingNoticeMinutes: 60}, logger.Nop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	f.points.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServicePoint{ID: 1, PartnerID: 5, Status: domain.ServicePointWorking}, nil)
	return f
}

func slot() *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:              11,
		ServicePointID:  1,
		DayOfWeek:       time.Monday,
		StartTime:       "10:00",
		EndTime:         "11:00",
		IsAvailable:     true,
		MaxAppointments: 2,
	}
}

func validRequest() *Request {
	return &Request{
		ServicePointID: 1,
		Date:           monday,
		StartTime:      "10:00",
		CustomerName:   "Иван",
		CustomerPhone:  "+7 (999) 000-00-00",
		LicensePlate:   ptr.Ptr("А123ВС77"),
	}
}

func TestExecute_CreatesBookingWithPost(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Booked: 0, Capacity: 2}, nil)
	f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&domain.Schedule{ID: 70, PostNumber: 1}, nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(70), domain.ScheduleBooked).Return(nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Reference != "" &&
			b.Status == domain.BookingConfirmed &&
			b.EndTime == "11:00" &&
			b.ScheduleID != nil && *b.ScheduleID == 70 &&
			b.UserID != nil && *b.UserID == 42
	})).Return(func(_ context.Context, b *domain.Booking) *domain.Booking {
		b.ID = 100
		return b
	}, nil)
	f.publisher.On("Publish", mock.Anything, notifications.BookingCreated, mock.Anything).Return(nil)

	req := validRequest()
	req.Actor = &domain.Actor{UserID: 42, Role: domain.RoleClient}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.Booking.ID)
	assert.Equal(t, int64(11), resp.TimeSlotID)
	assert.Equal(t, 1, resp.Remaining)
	f.publisher.AssertExpectations(t)
	f.schedules.AssertExpectations(t)
}

func TestExecute_WithoutSchedules(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Booked: 1, Capacity: 2}, nil)
	f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(nil, scheduleRepo.ErrScheduleNotFound)
	f.schedules.On("CountByStart", mock.Anything, int64(1), monday, types.TimeString("10:00")).Return(0, nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ScheduleID == nil && b.UserID == nil
	})).Return(&domain.Booking{ID: 101, ServicePointID: 1, BookingDate: monday, StartTime: "10:00"}, nil)
	f.publisher.On("Publish", mock.Anything, notifications.BookingCreated, mock.Anything).
		Return(fmt.Errorf("broker down"))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err, "publish failure must not fail the booking")
	assert.Equal(t, int64(101), resp.Booking.ID)
	assert.Equal(t, 0, resp.Remaining)
	f.schedules.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_FillsCarFromUserService(t *testing.T) {
	tests := []struct {
		name      string
		car       *userservice.Car
		carErr    error
		wantModel *string
		wantPlate *string
	}{
		{
			name:      "selected car",
			car:       &userservice.Car{Brand: "Toyota", Model: "Camry", LicensePlate: "А123ВС77"},
			wantModel: ptr.Ptr("Toyota Camry"),
			wantPlate: ptr.Ptr("А123ВС77"),
		},
		{name: "no selected car", carErr: userservice.ErrCarNotFound},
		{name: "user service down", carErr: fmt.Errorf("%w: timeout", userservice.ErrServiceDegraded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(passthroughTx{})
			f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
				Return(&check_availability.Result{Available: true, TimeSlot: slot(), Capacity: 2}, nil)
			f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
				Return(nil, scheduleRepo.ErrScheduleNotFound)
			f.schedules.On("CountByStart", mock.Anything, int64(1), monday, types.TimeString("10:00")).Return(0, nil)
			if tt.car != nil {
				f.cars.On("GetSelectedCarWithGracefulDegradation", mock.Anything, int64(42)).Return(tt.car, nil)
			} else {
				f.cars.On("GetSelectedCarWithGracefulDegradation", mock.Anything, int64(42)).Return(nil, tt.carErr)
			}

			var saved *domain.Booking
			f.bookings.On("Create", mock.Anything, mock.Anything).
				Return(func(_ context.Context, b *domain.Booking) *domain.Booking {
					saved = b
					b.ID = 102
					return b
				}, nil)
			f.publisher.On("Publish", mock.Anything, notifications.BookingCreated, mock.Anything).Return(nil)

			req := validRequest()
			req.LicensePlate = nil
			req.Actor = &domain.Actor{UserID: 42, Role: domain.RoleClient}

			_, err := f.uc.Execute(context.Background(), req)
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, tt.wantModel, saved.CarModel)
			assert.Equal(t, tt.wantPlate, saved.LicensePlate)
			f.cars.AssertExpectations(t)
		})
	}
}

func TestExecute_KeepsCarFromRequest(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Capacity: 2}, nil)
	f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(nil, scheduleRepo.ErrScheduleNotFound)
	f.schedules.On("CountByStart", mock.Anything, int64(1), monday, types.TimeString("10:00")).Return(0, nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.LicensePlate != nil && *b.LicensePlate == "А123ВС77"
	})).Return(&domain.Booking{ID: 103}, nil)
	f.publisher.On("Publish", mock.Anything, notifications.BookingCreated, mock.Anything).Return(nil)

	req := validRequest()
	req.Actor = &domain.Actor{UserID: 42, Role: domain.RoleClient}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	f.cars.AssertNotCalled(t, "GetSelectedCarWithGracefulDegradation", mock.Anything, mock.Anything)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Reason: check_availability.ReasonFullyBooked, TimeSlot: slot(), Booked: 2, Capacity: 2}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:30")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Capacity: 2}, nil)
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("20:00")).
		Return(&check_availability.Result{Reason: check_availability.ReasonNoTimeSlot}, nil)

	req := validRequest()
	req.StartTime = "10:30"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req.StartTime = "20:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

// Конфликт сериализации на блокировке строки слота (внутри транзакции, до фиксации)
func TestExecute_SerializationConflictOnSlotLock(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT .* FROM time_slots WHERE .* FOR UPDATE").
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
	sqlMock.ExpectRollback()

	f := newFixture(simpletxmanager.NewTransactionManager(db))
	f.uc.checker = check_availability.NewChecker(timeSlotRepo.NewRepository(db), bookingRepo.NewRepository(db))

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConcurrentBooking)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NoFreePost(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Booked: 0, Capacity: 1}, nil)
	// расписание на 10:00 есть, но единственный пост отменен вручную
	f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(nil, scheduleRepo.ErrScheduleNotFound)
	f.schedules.On("CountByStart", mock.Anything, int64(1), monday, types.TimeString("10:00")).Return(1, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.schedules.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PostTakenConcurrently(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.checker.On("IsSlotAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&check_availability.Result{Available: true, TimeSlot: slot(), Capacity: 2}, nil)
	f.schedules.On("FindAvailable", mock.Anything, int64(1), monday, types.TimeString("10:00")).
		Return(&domain.Schedule{ID: 70, PostNumber: 1}, nil)
	f.schedules.On("TransitionStatus", mock.Anything, int64(70), domain.ScheduleBooked).
		Return(scheduleRepo.ErrStatusConflict)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConcurrentBooking)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ServicePointChecks(t *testing.T) {
	f := newFixture(passthroughTx{})
	f.points.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.ServicePoint{ID: 2, Status: domain.ServicePointSuspended}, nil)
	f.points.On("GetByID", mock.Anything, int64(3)).
		Return(nil, servicePointRepo.ErrServicePointNotFound)

	req := validRequest()
	req.ServicePointID = 2
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServicePointNotWorking)

	req.ServicePointID = 3
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServicePointNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "missing name", modify: func(r *Request) { r.CustomerName = "  " }, wantErr: ErrInvalidInput},
		{name: "bad phone", modify: func(r *Request) { r.CustomerPhone = "call me" }, wantErr: ErrInvalidInput},
		{name: "bad email", modify: func(r *Request) { r.CustomerEmail = ptr.Ptr("nope") }, wantErr: ErrInvalidInput},
		{name: "bad time", modify: func(r *Request) { r.StartTime = "24:61" }, wantErr: ErrInvalidInput},
		{name: "date in past", modify: func(r *Request) { r.Date = monday.AddDate(0, 0, -7) }, wantErr: ErrInvalidDate},
		{name: "too far ahead", modify: func(r *Request) { r.Date = monday.AddDate(0, 2, 0) }, wantErr: ErrDateTooFarInFuture},
		{
			name: "too late today",
			modify: func(r *Request) {
				r.Date = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
				r.StartTime = "12:30"
			},
			wantErr: ErrTooLateToBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(passthroughTx{})
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.checker.AssertNotCalled(t, "IsSlotAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
