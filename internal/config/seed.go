package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// SeedServicePoint сервисная точка в seed файле
type SeedServicePoint struct {
	Name                string            `yaml:"name"`
	Address             string            `yaml:"address"`
	PostCount           int               `yaml:"post_count"`
	SlotDurationMinutes int               `yaml:"slot_duration_minutes"`
	WorkingHours        map[string]string `yaml:"working_hours"` // monday: "09:00-18:00"
}

// SeedPartner партнер со своими сервисными точками
type SeedPartner struct {
	Name          string             `yaml:"name"`
	ContactPhone  string             `yaml:"contact_phone"`
	ContactEmail  string             `yaml:"contact_email,omitempty"`
	ServicePoints []SeedServicePoint `yaml:"service_points"`
}

// Seed корень seed файла
type Seed struct {
	Partners []SeedPartner `yaml:"partners"`
	// Сколько дней расписания постов сгенерировать, начиная с сегодняшнего. 0 - не генерировать
	ScheduleDays int `yaml:"schedule_days"`
}

// LoadSeed читает и проверяет seed файл
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("validate seed file: %w", err)
	}

	return &seed, nil
}

// Validate проверяет обязательные поля
// Рабочие часы проверяются при создании точки
func (s *Seed) Validate() error {
	if len(s.Partners) == 0 {
		return fmt.Errorf("no partners defined")
	}
	if s.ScheduleDays < 0 {
		return fmt.Errorf("schedule_days must not be negative")
	}

	for i, p := range s.Partners {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("partner[%d]: name is required", i)
		}
		if strings.TrimSpace(p.ContactPhone) == "" {
			return fmt.Errorf("partner[%d]: contact_phone is required", i)
		}
		for j, sp := range p.ServicePoints {
			if strings.TrimSpace(sp.Name) == "" {
				return fmt.Errorf("partner[%d].service_points[%d]: name is required", i, j)
			}
			for key := range sp.WorkingHours {
				if _, ok := domain.ParseWeekdayKey(key); !ok {
					return fmt.Errorf("partner[%d].service_points[%d]: unknown weekday %q", i, j, key)
				}
			}
		}
	}

	return nil
}

// Hours конвертирует рабочие часы в domain модель
func (sp SeedServicePoint) Hours() domain.WorkingHours {
	hours := make(domain.WorkingHours, len(sp.WorkingHours))
	for day, value := range sp.WorkingHours {
		hours[day] = domain.WorkingHoursDay{Range: value}
	}
	return hours
}
