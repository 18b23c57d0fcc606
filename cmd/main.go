package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/cancel_booking"
	changeScheduleStatusHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/change_schedule_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/check_availability"
	completeBookingHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/create_booking"
	createPartnerHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/create_partner"
	createServicePointHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/create_service_point"
	deleteScheduleHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/delete_schedule"
	exportSchedulesHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/export_schedules"
	generateSchedulesHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/generate_schedules"
	generateTimeSlotsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/generate_time_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_booking"
	getBookingByReferenceHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_booking_by_reference"
	getPartnerHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_partner"
	getServicePointHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_service_point"
	getServicePointBookingsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_service_point_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/get_user_bookings"
	listPartnersHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_partners"
	listSchedulesHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_schedules"
	listServicePointsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_service_points"
	listTimeSlotsHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/list_time_slots"
	updateServicePointHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_service_point"
	updateTimeSlotHandler "github.com/m04kA/SMC-TireService/internal/api/handlers/update_time_slot"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/config"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/booking"
	partnerRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/partner"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TireService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-TireService/internal/service/bookings"
	partnersService "github.com/m04kA/SMC-TireService/internal/service/partners"
	schedulesService "github.com/m04kA/SMC-TireService/internal/service/schedules"
	servicePointsService "github.com/m04kA/SMC-TireService/internal/service/servicepoints"
	timeSlotsService "github.com/m04kA/SMC-TireService/internal/service/timeslots"
	checkAvailabilityUC "github.com/m04kA/SMC-TireService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-TireService/internal/usecase/create_booking"
	generateSchedulesUC "github.com/m04kA/SMC-TireService/internal/usecase/generate_schedules"
	generateTimeSlotsUC "github.com/m04kA/SMC-TireService/internal/usecase/generate_time_slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-TireService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
	"github.com/m04kA/SMC-TireService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TireService/pkg/txmanager"
)

const (
	rateLimitEvictInterval = time.Minute
	rateLimitIdleTimeout   = 10 * time.Minute
)

// eventPublisher общий интерфейс RabbitMQ и noop publisher
type eventPublisher interface {
	Publish(ctx context.Context, key notifications.RoutingKey, payload interface{}) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TireService...")

	// Инициализируем метрики (если включены)
	// nil коллектор безопасен: все методы Metrics ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		partnerRepository      *partnerRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		servicePointRepository *servicePointRepo.Repository
		timeSlotRepository     *timeSlotRepo.Repository
		txMgr                  *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		partnerRepository = partnerRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		servicePointRepository = servicePointRepo.NewRepository(wrappedDB)
		timeSlotRepository = timeSlotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		partnerRepository = partnerRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		servicePointRepository = servicePointRepo.NewRepository(db)
		timeSlotRepository = timeSlotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Redis (опционально): без него кеш работает только в памяти
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, continuing with in-memory cache only: %v", err)
			_ = client.Close()
		} else {
			redisClient = client
			defer client.Close()
			log.Info("Connected to Redis at %s", cfg.Redis.Address)
		}
		cancelPing()
	}

	appCache := cache.Disabled()
	if cfg.Cache.Enabled {
		appCache = cache.New(cache.Options{
			LocalSize: cfg.Cache.LocalSize,
			LocalTTL:  time.Duration(cfg.Cache.LocalTTL) * time.Second,
			RedisTTL:  time.Duration(cfg.Cache.RedisTTL) * time.Second,
		}, redisClient, metricsCollector, log)
		log.Info("Cache enabled (local_size=%d, redis=%t)", cfg.Cache.LocalSize, redisClient != nil)
	}

	// Публикация событий
	var publisher eventPublisher = notifications.NewNoopPublisher(log)
	if cfg.RabbitMQ.Enabled {
		rabbit, err := notifications.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Publishing events to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	partnerSvc := partnersService.NewService(partnerRepository, log)
	servicePointSvc := servicePointsService.NewService(
		servicePointRepository,
		partnerRepository,
		appCache,
		cfg.Schedule.DefaultSlotDuration,
		log,
	)
	timeSlotSvc := timeSlotsService.NewService(timeSlotRepository, servicePointRepository, appCache, log)
	scheduleSvc := schedulesService.NewService(scheduleRepository, servicePointRepository, bookingRepository, publisher, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		servicePointRepository,
		scheduleRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	checker := checkAvailabilityUC.NewChecker(timeSlotRepository, bookingRepository)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(servicePointRepository, checker, log)

	// Клиент сервиса пользователей: подставляет выбранный автомобиль клиента
	var carProvider createBookingUC.CarProvider
	if cfg.UserService.Enabled {
		carProvider = userservice.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			time.Duration(cfg.UserService.CacheTTL)*time.Second,
			log,
		)
		log.Info("User service client enabled: %s", cfg.UserService.URL)
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		servicePointRepository,
		scheduleRepository,
		checker,
		txMgr,
		publisher,
		carProvider,
		metricsCollector,
		createBookingUC.Options{
			AdvanceBookingDays:      cfg.Schedule.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Schedule.MinBookingNoticeMinutes,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		servicePointRepository,
		timeSlotRepository,
		bookingRepository,
		getAvailableSlotsUC.Options{
			AdvanceBookingDays:      cfg.Schedule.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Schedule.MinBookingNoticeMinutes,
		},
		log,
	)

	generateTimeSlotsUseCase := generateTimeSlotsUC.NewUseCase(
		servicePointRepository,
		timeSlotRepository,
		txMgr,
		appCache,
		publisher,
		metricsCollector,
		log,
	)

	generateSchedulesUseCase := generateSchedulesUC.NewUseCase(
		servicePointRepository,
		scheduleRepository,
		metricsCollector,
		cfg.Schedule.MaxGenerationDays,
		log,
	)

	// Инициализируем handlers
	createPartner := createPartnerHandler.NewHandler(partnerSvc, log)
	getPartner := getPartnerHandler.NewHandler(partnerSvc, log)
	listPartners := listPartnersHandler.NewHandler(partnerSvc, log)

	createServicePoint := createServicePointHandler.NewHandler(servicePointSvc, log)
	getServicePoint := getServicePointHandler.NewHandler(servicePointSvc, log)
	listServicePoints := listServicePointsHandler.NewHandler(servicePointSvc, log)
	updateServicePoint := updateServicePointHandler.NewHandler(servicePointSvc, log)

	generateTimeSlots := generateTimeSlotsHandler.NewHandler(generateTimeSlotsUseCase, log)
	listTimeSlots := listTimeSlotsHandler.NewHandler(timeSlotSvc, log)
	updateTimeSlot := updateTimeSlotHandler.NewHandler(timeSlotSvc, log)

	generateSchedules := generateSchedulesHandler.NewHandler(generateSchedulesUseCase, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	exportSchedules := exportSchedulesHandler.NewHandler(scheduleSvc, log)
	changeScheduleStatus := changeScheduleStatusHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)

	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByReference := getBookingByReferenceHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getServicePointBookings := getServicePointBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, log)
	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT secret is empty, trusting X-User-ID / X-User-Role headers")
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/service-points", listServicePoints.Handle).Methods(http.MethodGet)
	api.HandleFunc("/service-points/{id}", getServicePoint.Handle).Methods(http.MethodGet)
	api.HandleFunc("/service-points/{id}/time-slots", listTimeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/reference/{reference}", getBookingByReference.Handle).Methods(http.MethodGet)

	// Бронирование: авторизация опциональна, запросы ограничены по IP
	booking := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, trustedProxies, log)
		limiterCtx, stopLimiter := context.WithCancel(context.Background())
		defer stopLimiter()
		go limiter.Run(limiterCtx, rateLimitEvictInterval, rateLimitIdleTimeout)
		booking.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	booking.Use(authenticator.OptionalAuth)

	booking.HandleFunc("/service-points/{id}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/service-points/{id}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Auth)

	// --- Бронирования клиента ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление сервисными точками (партнеры и администраторы) ---
	management := protected.PathPrefix("").Subrouter()
	management.Use(middleware.RequireRole(domain.RoleAdmin, domain.RolePartner))

	management.HandleFunc("/partners/{partnerId}", getPartner.Handle).Methods(http.MethodGet)
	management.HandleFunc("/service-points", createServicePoint.Handle).Methods(http.MethodPost)
	management.HandleFunc("/service-points/{id}", updateServicePoint.Handle).Methods(http.MethodPatch)
	management.HandleFunc("/service-points/{id}/time-slots/generate", generateTimeSlots.Handle).Methods(http.MethodPost)
	management.HandleFunc("/time-slots/{slotId}", updateTimeSlot.Handle).Methods(http.MethodPatch)
	management.HandleFunc("/service-points/{id}/schedules/generate", generateSchedules.Handle).Methods(http.MethodPost)
	management.HandleFunc("/service-points/{id}/schedules/export", exportSchedules.Handle).Methods(http.MethodGet)
	management.HandleFunc("/service-points/{id}/schedules", listSchedules.Handle).Methods(http.MethodGet)
	management.HandleFunc("/schedules/{scheduleId}/status", changeScheduleStatus.Handle).Methods(http.MethodPatch)
	management.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)
	management.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	management.HandleFunc("/service-points/{id}/bookings", getServicePointBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/partners", createPartner.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/partners", listPartners.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
