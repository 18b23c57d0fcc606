package generate_time_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/slots"
)

// UseCase use case генерации еженедельных слотов из рабочих часов
type UseCase struct {
	servicePointRepo ServicePointRepository
	timeSlotRepo     TimeSlotRepository
	txManager        TransactionManager
	cache            Cache
	publisher        EventPublisher
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	servicePointRepo ServicePointRepository,
	timeSlotRepo TimeSlotRepository,
	txManager TransactionManager,
	cache Cache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		servicePointRepo: servicePointRepo,
		timeSlotRepo:     timeSlotRepo,
		txManager:        txManager,
		cache:            cache,
		publisher:        publisher,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute загружает сервисную точку, проверяет права и перегенерирует ее слоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateTimeSlots: service point=%d", req.ServicePointID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateTimeSlots: validation failed: %v", err)
		return nil, err
	}

	sp, err := uc.servicePointRepo.GetByID(ctx, req.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			return nil, ErrServicePointNotFound
		}
		uc.logger.Error("GenerateTimeSlots: failed to get service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %v", ErrInternal, err)
	}

	if req.Actor != nil && !req.Actor.CanManage(sp) {
		uc.logger.Warn("GenerateTimeSlots: access denied for user=%d to service point id=%d", req.Actor.UserID, sp.ID)
		return nil, ErrAccessDenied
	}

	workingHours := req.WorkingHours
	if workingHours == nil {
		workingHours = sp.WorkingHours
	}

	duration := sp.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		duration = *req.SlotDurationMinutes
	}
	if err := validateSlotDuration(duration); err != nil {
		uc.logger.Warn("GenerateTimeSlots: service point id=%d has invalid default slot duration: %v", sp.ID, err)
		return nil, err
	}

	days, err := uc.GenerateSlotsFromWorkingHours(ctx, sp.ID, workingHours, duration)
	resp := &Response{
		ServicePointID:      sp.ID,
		SlotDurationMinutes: duration,
		Days:                days,
	}
	for _, day := range days {
		resp.TotalSlots += day.Created
	}
	if err != nil {
		return resp, err
	}

	uc.publishRegenerated(ctx, resp)
	return resp, nil
}

// GenerateSlotsFromWorkingHours перегенерирует слоты точки на каждый день недели
// Каждый день обрабатывается в своей транзакции: старые слоты дня удаляются,
// для рабочего дня создаются новые с max_appointments = 1.
// Выходной и некорректный день только очищаются.
// Ошибка останавливает цикл, уже обработанные дни остаются замененными
func (uc *UseCase) GenerateSlotsFromWorkingHours(
	ctx context.Context,
	servicePointID int64,
	workingHours domain.WorkingHours,
	slotDuration int,
) ([]DayResult, error) {
	results := make([]DayResult, 0, len(domain.Weekdays))
	defer uc.cache.Delete(ctx, cache.AllTimeSlotsKeys(servicePointID)...)

	for _, weekday := range domain.Weekdays {
		key := domain.WeekdayKey(weekday)
		result := DayResult{Weekday: key, State: DayOpen}

		interval, err := slots.ParseDay(workingHours.Day(weekday))
		switch {
		case err != nil:
			uc.logger.Warn("GenerateTimeSlots: service point=%d, %s has malformed working hours, treated as closed: %v",
				servicePointID, key, err)
			result.State = DayMalformed
		case interval == nil:
			result.State = DayClosed
		default:
			result.Open = interval.Open.String()
			result.Close = interval.Close.String()
		}

		timeSlots := buildTimeSlots(servicePointID, weekday, slots.Generate(interval, slotDuration))

		err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
			removed, err := uc.timeSlotRepo.DeleteByDay(txCtx, servicePointID, weekday)
			if err != nil {
				return err
			}
			result.Removed = removed
			return uc.timeSlotRepo.CreateBatch(txCtx, timeSlots)
		})
		if err != nil {
			uc.logger.Error("GenerateTimeSlots: service point=%d, %s failed: %v", servicePointID, key, err)
			return results, fmt.Errorf("%w: %s: %v", ErrInternal, key, err)
		}

		result.Created = len(timeSlots)
		results = append(results, result)
		uc.metrics.RecordTimeSlotsGenerated(key, result.Created)

		uc.logger.Info("GenerateTimeSlots: service point=%d, %s: %s, removed=%d, created=%d",
			servicePointID, key, result.State, result.Removed, result.Created)
	}

	return results, nil
}

func buildTimeSlots(servicePointID int64, weekday time.Weekday, ranges []slots.Range) []*domain.TimeSlot {
	timeSlots := make([]*domain.TimeSlot, 0, len(ranges))
	for _, r := range ranges {
		timeSlots = append(timeSlots, &domain.TimeSlot{
			ServicePointID:  servicePointID,
			DayOfWeek:       weekday,
			StartTime:       r.Start,
			EndTime:         r.End,
			IsAvailable:     true,
			MaxAppointments: domain.DefaultMaxAppointments,
		})
	}
	return timeSlots
}

func (uc *UseCase) publishRegenerated(ctx context.Context, resp *Response) {
	perDay := make(map[string]int, len(resp.Days))
	for _, day := range resp.Days {
		perDay[day.Weekday] = day.Created
	}

	err := uc.publisher.Publish(ctx, notifications.TimeSlotsRegenerated, notifications.TimeSlotsRegeneratedEvent{
		ServicePointID: resp.ServicePointID,
		SlotsPerDay:    perDay,
	})
	if err != nil {
		uc.logger.Warn("GenerateTimeSlots: failed to publish event for service point=%d: %v", resp.ServicePointID, err)
	}
}
