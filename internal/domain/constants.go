package domain

import "time"

// Значения по умолчанию
const (
	DefaultSlotDurationMinutes = 30
	DefaultMaxAppointments     = 1
	DefaultPostCount           = 1
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes      = 10
	MaxSlotDurationMinutes      = 180
	MinPostCount                = 1
	MaxPostCount                = 50
	MaxAppointmentsPerSlot      = 100
	MaxNameLength               = 255
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekdays канонический порядок дней недели для генерации слотов
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// WeekdayKey ключ дня недели в карте рабочих часов ("monday", ...)
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// ParseWeekdayKey возвращает день недели по ключу рабочих часов
func ParseWeekdayKey(key string) (time.Weekday, bool) {
	for d, k := range weekdayKeys {
		if k == key {
			return d, true
		}
	}
	return 0, false
}

// DateOnly отбрасывает время, оставляя дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
