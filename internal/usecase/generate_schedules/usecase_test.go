package generate_schedules

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
)

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

// fakeScheduleRepo эмулирует уникальный ключ (точка, пост, дата, начало)
type fakeScheduleRepo struct {
	rows map[string]*domain.Schedule
}

func (r *fakeScheduleRepo) CreateBatch(_ context.Context, schedules []*domain.Schedule) (int64, error) {
	var inserted int64
	for _, s := range schedules {
		key := fmt.Sprintf("%s/%s/%d", s.Date.Format(domain.DateFormat), s.StartTime, s.PostNumber)
		if _, ok := r.rows[key]; ok {
			continue
		}
		r.rows[key] = s
		inserted++
	}
	return inserted, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func newUseCase(sp *domain.ServicePoint) (*UseCase, *fakeScheduleRepo) {
	points := &mockServicePointRepo{}
	points.On("GetByID", mock.Anything, sp.ID).Return(sp, nil)
	repo := &fakeScheduleRepo{rows: make(map[string]*domain.Schedule)}

	var m *metrics.Metrics
	uc := NewUseCase(points, repo, m, 31, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc, repo
}

func servicePoint() *domain.ServicePoint {
	return &domain.ServicePoint{
		ID:                  1,
		PartnerID:           5,
		PostCount:           2,
		SlotDurationMinutes: 60,
		WorkingHours: domain.WorkingHours{
			"monday":  {Range: "09:00-12:00"},
			"tuesday": {Range: "broken"},
			"sunday":  {Range: "closed"},
		},
	}
}

func TestUseCase_GeneratesPerPost(t *testing.T) {
	uc, repo := newUseCase(servicePoint())

	// 2025-03-09 воскресенье, 2025-03-10 понедельник, 2025-03-11 вторник
	resp, err := uc.Execute(context.Background(), &Request{
		ServicePointID: 1,
		From:           time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.WorkingDays)
	assert.Equal(t, 6, resp.Generated) // 3 слота x 2 поста
	assert.Equal(t, int64(6), resp.Inserted)
	assert.Len(t, repo.rows, 6)
	for _, s := range repo.rows {
		assert.Equal(t, domain.ScheduleAvailable, s.Status)
		assert.Equal(t, time.Monday, s.Date.Weekday())
	}
}

func TestUseCase_KeepsExistingRows(t *testing.T) {
	uc, repo := newUseCase(servicePoint())
	req := &Request{
		ServicePointID: 1,
		From:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Generated)
	assert.Equal(t, int64(0), resp.Inserted)
	assert.Len(t, repo.rows, 6)
}

func TestUseCase_Validation(t *testing.T) {
	uc, _ := newUseCase(servicePoint())
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	_, err := uc.Execute(context.Background(), &Request{ServicePointID: 1, From: day(10), To: day(9)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{ServicePointID: 1, From: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), To: day(2)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{ServicePointID: 1, From: day(2), To: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	otherPartner := int64(9)
	_, err = uc.Execute(context.Background(), &Request{
		Actor:          &domain.Actor{Role: domain.RolePartner, PartnerID: &otherPartner},
		ServicePointID: 1, From: day(10), To: day(10),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
