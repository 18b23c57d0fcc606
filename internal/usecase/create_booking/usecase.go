package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/integrations/userservice"
	"github.com/m04kA/SMC-TireService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	servicePointRepo ServicePointRepository
	scheduleRepo     ScheduleRepository
	checker          AvailabilityChecker
	txManager        TransactionManager
	publisher        EventPublisher
	cars             CarProvider
	metrics          Metrics
	options          Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// cars может быть nil: данные автомобиля тогда берутся только из запроса
func NewUseCase(
	bookingRepo BookingRepository,
	servicePointRepo ServicePointRepository,
	scheduleRepo ScheduleRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	cars CarProvider,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		servicePointRepo: servicePointRepo,
		scheduleRepo:     scheduleRepo,
		checker:          checker,
		txManager:        txManager,
		publisher:        publisher,
		cars:             cars,
		metrics:          metrics,
		options:          options,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка вместимости, занятие поста и вставка выполняются в одной сериализуемой транзакции,
// строка слота блокируется FOR UPDATE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service point=%d, date=%s, time=%s",
		req.ServicePointID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBooking("create", "rejected")
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Ограничения по дате и времени записи
	if err := validateDate(date, now, uc.options.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		uc.metrics.RecordBooking("create", "rejected")
		return nil, err
	}
	if err := validateBookingTime(date, req.StartTime, now, uc.options.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		uc.metrics.RecordBooking("create", "rejected")
		return nil, err
	}

	// 3. Сервисная точка должна принимать записи
	sp, err := uc.servicePointRepo.GetByID(ctx, req.ServicePointID)
	if err != nil {
		if errors.Is(err, servicePointRepo.ErrServicePointNotFound) {
			uc.logger.Warn("CreateBooking: service point id=%d not found", req.ServicePointID)
			return nil, ErrServicePointNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service point id=%d: %v", req.ServicePointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %w", ErrInternal, err)
	}
	if !sp.IsWorking() {
		uc.logger.Warn("CreateBooking: service point id=%d has status %s", sp.ID, sp.Status)
		uc.metrics.RecordBooking("create", "rejected")
		return nil, ErrServicePointNotWorking
	}

	uc.fillCar(ctx, req)

	var (
		result    *domain.Booking
		slotID    int64
		remaining int
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Слот, покрывающий время, и его занятость (строка слота блокируется)
		availability, err := uc.checker.IsSlotAvailable(txCtx, sp.ID, date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if availability.TimeSlot == nil {
			uc.logger.Warn("CreateBooking: no time slot covers %s", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 4.2. Запись возможна только на начало слота
		slot := availability.TimeSlot
		if !req.StartTime.Equal(slot.StartTime) {
			uc.logger.Warn("CreateBooking: time %s is not a slot start (slot %s-%s)",
				req.StartTime, slot.StartTime, slot.EndTime)
			return fmt.Errorf("%w: nearest slot starts at %s", ErrInvalidTimeSlot, slot.StartTime)
		}

		if !availability.Available {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d spots taken",
				availability.Booked, availability.Capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken",
			availability.Booked, availability.Capacity)

		// 4.3. Свободный пост (если расписание постов сгенерировано на эту дату)
		scheduleID, err := uc.occupyPost(txCtx, sp.ID, req)
		if err != nil {
			return err
		}

		// 4.4. Сохраняем бронирование
		booking := &domain.Booking{
			Reference:      uuid.NewString(),
			ServicePointID: sp.ID,
			ScheduleID:     scheduleID,
			BookingDate:    date,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Status:         domain.BookingConfirmed,
			CustomerName:   strings.TrimSpace(req.CustomerName),
			CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
			CustomerEmail:  req.CustomerEmail,
			CarModel:       req.CarModel,
			LicensePlate:   req.LicensePlate,
			Notes:          req.Notes,
		}
		if req.Actor != nil {
			userID := req.Actor.UserID
			booking.UserID = &userID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		slotID = slot.ID
		remaining = availability.Capacity - availability.Booked - 1
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for service point=%d %s %s",
				sp.ID, date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.RecordBooking("create", "conflict")
			return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
		}
		if errors.Is(err, ErrInternal) {
			uc.metrics.RecordBooking("create", "error")
		} else {
			uc.metrics.RecordBooking("create", "rejected")
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)
	uc.metrics.RecordBooking("create", "success")

	if err := uc.publisher.Publish(ctx, notifications.BookingCreated, notifications.NewBookingEvent(result)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		Booking:    result,
		TimeSlotID: slotID,
		Remaining:  remaining,
	}, nil
}

// occupyPost переводит свободный пост в booked
// Если расписание постов на дату и время не сгенерировано, бронирование создается без поста.
// Если посты есть, но ни один не свободен, слот считается занятым
func (uc *UseCase) occupyPost(ctx context.Context, servicePointID int64, req *Request) (*int64, error) {
	date := domain.DateOnly(req.Date)

	schedule, err := uc.scheduleRepo.FindAvailable(ctx, servicePointID, date, req.StartTime)
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		posts, err := uc.scheduleRepo.CountByStart(ctx, servicePointID, date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count posts: %v", err)
			return nil, fmt.Errorf("%w: failed to count posts: %w", ErrInternal, err)
		}
		if posts > 0 {
			uc.logger.Warn("CreateBooking: no free post at %s, %d posts scheduled", req.StartTime, posts)
			return nil, ErrSlotNotAvailable
		}
		return nil, nil
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find available post: %v", err)
		return nil, fmt.Errorf("%w: failed to find available post: %w", ErrInternal, err)
	}

	if err := uc.scheduleRepo.TransitionStatus(ctx, schedule.ID, domain.ScheduleBooked); err != nil {
		if errors.Is(err, scheduleRepo.ErrStatusConflict) {
			uc.logger.Warn("CreateBooking: post schedule id=%d was taken concurrently", schedule.ID)
			return nil, ErrConcurrentBooking
		}
		uc.logger.Error("CreateBooking: failed to book schedule id=%d: %v", schedule.ID, err)
		return nil, fmt.Errorf("%w: failed to book schedule: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: post %d (schedule id=%d) booked", schedule.PostNumber, schedule.ID)
	id := schedule.ID
	return &id, nil
}

// fillCar подставляет выбранный автомобиль авторизованного клиента,
// если в запросе нет ни модели, ни номера. Ошибки UserService не мешают записи
func (uc *UseCase) fillCar(ctx context.Context, req *Request) {
	if uc.cars == nil || req.Actor == nil || req.CarModel != nil || req.LicensePlate != nil {
		return
	}

	car, err := uc.cars.GetSelectedCarWithGracefulDegradation(ctx, req.Actor.UserID)
	if err != nil {
		if !errors.Is(err, userservice.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: booking without car details for user=%d: %v", req.Actor.UserID, err)
		}
		return
	}

	if model := car.DisplayModel(); model != "" {
		req.CarModel = &model
	}
	if plate := strings.TrimSpace(car.LicensePlate); plate != "" {
		req.LicensePlate = &plate
	}
}
