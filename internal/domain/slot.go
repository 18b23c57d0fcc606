package domain

import "github.com/m04kA/SMC-TireService/pkg/types"

// AvailableSlot слот на конкретную дату с учетом занятости
type AvailableSlot struct {
	TimeSlotID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Booked     int // активных бронирований в слоте
	Capacity   int // max_appointments слота
}

// Remaining количество свободных мест
func (s *AvailableSlot) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.Remaining() == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Capacity-s.Remaining()) / float64(s.Capacity) * 100
}
