package notifications

import (
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

// RoutingKey ключ маршрутизации события в topic exchange
type RoutingKey string

const (
	BookingCreated       RoutingKey = "booking.created"
	BookingCancelled     RoutingKey = "booking.cancelled"
	BookingCompleted     RoutingKey = "booking.completed"
	ScheduleStatusChange RoutingKey = "schedule.status_changed"
	TimeSlotsRegenerated RoutingKey = "timeslots.regenerated"
)

// Envelope конверт публикуемого сообщения
type Envelope struct {
	ID         string      `json:"id"`
	Type       RoutingKey  `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	BookingID      int64   `json:"bookingId"`
	Reference      string  `json:"reference"`
	ServicePointID int64   `json:"servicePointId"`
	ScheduleID     *int64  `json:"scheduleId,omitempty"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Status         string  `json:"status"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	CustomerEmail  *string `json:"customerEmail,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// NewBookingEvent собирает событие бронирования для публикации
func NewBookingEvent(b *domain.Booking) BookingEvent {
	return BookingEvent{
		BookingID:      b.ID,
		Reference:      b.Reference,
		ServicePointID: b.ServicePointID,
		ScheduleID:     b.ScheduleID,
		Date:           b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		Status:         string(b.Status),
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		Reason:         b.CancellationReason,
	}
}

// ScheduleStatusEvent смена статуса слота расписания
type ScheduleStatusEvent struct {
	ScheduleID     int64  `json:"scheduleId"`
	ServicePointID int64  `json:"servicePointId"`
	PostNumber     int    `json:"postNumber"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	Status         string `json:"status"`
}

// TimeSlotsRegeneratedEvent слоты сервисной точки перегенерированы
type TimeSlotsRegeneratedEvent struct {
	ServicePointID int64          `json:"servicePointId"`
	SlotsPerDay    map[string]int `json:"slotsPerDay"`
}
