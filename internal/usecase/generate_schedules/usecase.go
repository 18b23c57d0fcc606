package generate_schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/slots"
)

// UseCase use case генерации расписания постов на даты
type UseCase struct {
	servicePointRepo ServicePointRepository
	scheduleRepo     ScheduleRepository
	metrics          Metrics
	timeProvider     TimeProvider
	maxDays          int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// maxDays ограничивает длину периода одного запроса (0 - без ограничения)
func NewUseCase(
	servicePointRepo ServicePointRepository,
	scheduleRepo ScheduleRepository,
	metrics Metrics,
	maxDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		servicePointRepo: servicePointRepo,
		scheduleRepo:     scheduleRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		maxDays:          maxDays,
		logger:           logger,
	}
}

// Execute для каждой даты периода и каждого поста создает слоты расписания со статусом available
// Уже существующие слоты (точка, пост, дата, начало) остаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSchedules: service point=%d, period=%s..%s",
		req.ServicePointID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req, uc.timeProvider.Now(), uc.maxDays); err != nil {
		uc.logger.Warn("GenerateSchedules: validation failed: %v", err)
		return nil, err
	}

	sp, err := uc.servicePointRepo.GetByID(ctx, req.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		uc.logger.Error("GenerateSchedules: failed to get service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %v", ErrInternal, err)
	}

	if req.Actor != nil && !req.Actor.CanManage(sp) {
		uc.logger.Warn("GenerateSchedules: access denied for user=%d to service point id=%d", req.Actor.UserID, sp.ID)
		return nil, ErrAccessDenied
	}

	duration := sp.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		duration = *req.SlotDurationMinutes
	}
	if err := validateSlotDuration(duration); err != nil {
		return nil, err
	}

	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	resp := &Response{
		ServicePointID:      sp.ID,
		From:                from.Format(domain.DateFormat),
		To:                  to.Format(domain.DateFormat),
		SlotDurationMinutes: duration,
		PostCount:           sp.PostCount,
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		interval, err := slots.ParseDay(sp.WorkingHours.Day(date.Weekday()))
		if err != nil {
			uc.logger.Warn("GenerateSchedules: service point=%d, %s has malformed working hours, skipped: %v",
				sp.ID, date.Format(domain.DateFormat), err)
			continue
		}

		ranges := slots.Generate(interval, duration)
		if len(ranges) == 0 {
			continue
		}

		schedules := buildSchedules(sp, date, ranges)
		inserted, err := uc.scheduleRepo.CreateBatch(ctx, schedules)
		if err != nil {
			uc.logger.Error("GenerateSchedules: service point=%d, %s failed: %v", sp.ID, date.Format(domain.DateFormat), err)
			return resp, fmt.Errorf("%w: %s: %v", ErrInternal, date.Format(domain.DateFormat), err)
		}

		resp.WorkingDays++
		resp.Generated += len(schedules)
		resp.Inserted += inserted
		uc.metrics.RecordSchedulesGenerated(inserted)
	}

	uc.logger.Info("GenerateSchedules: service point=%d, working days=%d, generated=%d, inserted=%d",
		sp.ID, resp.WorkingDays, resp.Generated, resp.Inserted)
	return resp, nil
}

func buildSchedules(sp *domain.ServicePoint, date time.Time, ranges []slots.Range) []*domain.Schedule {
	schedules := make([]*domain.Schedule, 0, len(ranges)*sp.PostCount)
	for post := 1; post <= sp.PostCount; post++ {
		for _, r := range ranges {
			schedules = append(schedules, &domain.Schedule{
				ServicePointID: sp.ID,
				PostNumber:     post,
				Date:           date,
				StartTime:      r.Start,
				EndTime:        r.End,
				Status:         domain.ScheduleAvailable,
			})
		}
	}
	return schedules
}
