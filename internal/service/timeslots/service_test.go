package timeslots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots/models"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

type mockTimeSlotRepo struct {
	mock.Mock
}

func (m *mockTimeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockTimeSlotRepo) ListByServicePoint(ctx context.Context, servicePointID int64, day *time.Weekday) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, servicePointID, day)
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *mockTimeSlotRepo) Update(ctx context.Context, id int64, update domain.TimeSlotUpdate) error {
	return m.Called(ctx, id, update).Error(0)
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

func newTestService() (*Service, *mockTimeSlotRepo, *mockServicePointRepo) {
	tsRepo := &mockTimeSlotRepo{}
	spRepo := &mockServicePointRepo{}
	c := cache.New(cache.Options{LocalSize: 16}, nil, nil, logger.Nop())
	return NewService(tsRepo, spRepo, c, logger.Nop()), tsRepo, spRepo
}

func TestService_List_CachesWeekday(t *testing.T) {
	svc, tsRepo, spRepo := newTestService()
	monday := time.Monday

	spRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.ServicePoint{ID: 1}, nil)
	tsRepo.On("ListByServicePoint", mock.Anything, int64(1), &monday).Return([]*domain.TimeSlot{
		{ID: 1, ServicePointID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsAvailable: true, MaxAppointments: 1},
	}, nil).Once()

	first, err := svc.List(context.Background(), 1, &monday)
	require.NoError(t, err)
	require.Len(t, first.TimeSlots, 1)
	assert.Equal(t, "monday", first.TimeSlots[0].Weekday)

	second, err := svc.List(context.Background(), 1, &monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	tsRepo.AssertNumberOfCalls(t, "ListByServicePoint", 1)
}

func TestService_Update(t *testing.T) {
	svc, tsRepo, spRepo := newTestService()
	partnerID := int64(5)
	owner := domain.Actor{UserID: 10, Role: domain.RolePartner, PartnerID: &partnerID}

	slot := &domain.TimeSlot{ID: 3, ServicePointID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsAvailable: true, MaxAppointments: 1}
	tsRepo.On("GetByID", mock.Anything, int64(3)).Return(slot, nil)
	spRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.ServicePoint{ID: 1, PartnerID: 5}, nil)
	tsRepo.On("Update", mock.Anything, int64(3), domain.TimeSlotUpdate{MaxAppointments: ptr.Ptr(3)}).Return(nil)

	resp, err := svc.Update(context.Background(), owner, 3, &models.UpdateTimeSlotRequest{MaxAppointments: ptr.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxAppointments)
	assert.True(t, resp.IsAvailable)
}

func TestService_Update_Errors(t *testing.T) {
	svc, tsRepo, spRepo := newTestService()
	otherPartner := int64(6)
	stranger := domain.Actor{UserID: 11, Role: domain.RolePartner, PartnerID: &otherPartner}

	_, err := svc.Update(context.Background(), stranger, 3, &models.UpdateTimeSlotRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), stranger, 3, &models.UpdateTimeSlotRequest{MaxAppointments: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tsRepo.On("GetByID", mock.Anything, int64(4)).Return(nil, timeSlotRepo.ErrTimeSlotNotFound)
	_, err = svc.Update(context.Background(), stranger, 4, &models.UpdateTimeSlotRequest{IsAvailable: ptr.Ptr(false)})
	assert.ErrorIs(t, err, ErrTimeSlotNotFound)

	tsRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.TimeSlot{ID: 3, ServicePointID: 1}, nil)
	spRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.ServicePoint{ID: 1, PartnerID: 5}, nil)
	_, err = svc.Update(context.Background(), stranger, 3, &models.UpdateTimeSlotRequest{IsAvailable: ptr.Ptr(false)})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
