package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TireService/internal/config"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/infra/cache"
	partnerRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/partner"
	scheduleRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/schedule"
	servicePointRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/servicepoint"
	timeSlotRepo "github.com/m04kA/SMC-TireService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TireService/internal/integrations/notifications"
	partnersService "github.com/m04kA/SMC-TireService/internal/service/partners"
	partnerModels "github.com/m04kA/SMC-TireService/internal/service/partners/models"
	servicePointsService "github.com/m04kA/SMC-TireService/internal/service/servicepoints"
	servicePointModels "github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
	generateSchedulesUC "github.com/m04kA/SMC-TireService/internal/usecase/generate_schedules"
	generateTimeSlotsUC "github.com/m04kA/SMC-TireService/internal/usecase/generate_time_slots"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/metrics"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
	"github.com/m04kA/SMC-TireService/pkg/simpletxmanager"
)

// seedActor от имени которого создаются партнеры и точки
var seedActor = domain.Actor{UserID: 0, Role: domain.RoleAdmin}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	seedPath := flag.String("seed", "configs/seed.yaml", "path to seed file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	seed, err := config.LoadSeed(*seedPath)
	if err != nil {
		log.Fatal("Failed to load seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	// Метрики и кеш seed не нужны: nil коллектор и выключенный кеш
	var noMetrics *metrics.Metrics
	noCache := cache.Disabled()
	publisher := notifications.NewNoopPublisher(log)

	partners := partnerRepo.NewRepository(db)
	servicePoints := servicePointRepo.NewRepository(db)
	timeSlots := timeSlotRepo.NewRepository(db)
	schedules := scheduleRepo.NewRepository(db)
	txMgr := simpletxmanager.NewTransactionManager(db)

	partnerSvc := partnersService.NewService(partners, log)
	servicePointSvc := servicePointsService.NewService(servicePoints, partners, noCache, cfg.Schedule.DefaultSlotDuration, log)
	generateTimeSlots := generateTimeSlotsUC.NewUseCase(servicePoints, timeSlots, txMgr, noCache, publisher, noMetrics, log)
	generateSchedules := generateSchedulesUC.NewUseCase(servicePoints, schedules, noMetrics, cfg.Schedule.MaxGenerationDays, log)

	ctx := context.Background()
	today := domain.DateOnly(time.Now())

	var pointsCreated, slotsCreated int
	for _, p := range seed.Partners {
		partnerReq := &partnerModels.CreatePartnerRequest{
			Name:         p.Name,
			ContactPhone: p.ContactPhone,
		}
		if p.ContactEmail != "" {
			partnerReq.ContactEmail = ptr.Ptr(p.ContactEmail)
		}

		partner, err := partnerSvc.Create(ctx, seedActor, partnerReq)
		if err != nil {
			log.Fatal("Failed to create partner %q: %v", p.Name, err)
		}
		log.Info("Partner created: id=%d, name=%s", partner.ID, partner.Name)

		for _, sp := range p.ServicePoints {
			spReq := &servicePointModels.CreateServicePointRequest{
				PartnerID:    partner.ID,
				Name:         sp.Name,
				Address:      sp.Address,
				WorkingHours: sp.Hours(),
			}
			if sp.PostCount > 0 {
				spReq.PostCount = ptr.Ptr(sp.PostCount)
			}
			if sp.SlotDurationMinutes > 0 {
				spReq.SlotDurationMinutes = ptr.Ptr(sp.SlotDurationMinutes)
			}

			point, err := servicePointSvc.Create(ctx, seedActor, spReq)
			if err != nil {
				log.Fatal("Failed to create service point %q: %v", sp.Name, err)
			}
			pointsCreated++

			// Системный вызов: Actor = nil
			slots, err := generateTimeSlots.Execute(ctx, &generateTimeSlotsUC.Request{ServicePointID: point.ID})
			if err != nil {
				log.Fatal("Failed to generate time slots for service point id=%d: %v", point.ID, err)
			}
			slotsCreated += slots.TotalSlots
			log.Info("Service point created: id=%d, name=%s, time_slots=%d", point.ID, point.Name, slots.TotalSlots)

			if seed.ScheduleDays > 0 {
				result, err := generateSchedules.Execute(ctx, &generateSchedulesUC.Request{
					ServicePointID: point.ID,
					From:           today,
					To:             today.AddDate(0, 0, seed.ScheduleDays-1),
				})
				if err != nil {
					log.Fatal("Failed to generate schedules for service point id=%d: %v", point.ID, err)
				}
				log.Info("Schedules generated: service_point_id=%d, inserted=%d", point.ID, result.Inserted)
			}
		}
	}

	log.Info("Seed completed: partners=%d, service_points=%d, time_slots=%d",
		len(seed.Partners), pointsCreated, slotsCreated)
}
