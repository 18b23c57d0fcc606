package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/ptr"
)

func TestScheduleXLSX(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sp := &domain.ServicePoint{Name: "Шиномонтаж", Address: "ул. Ленина, 1"}

	schedules := []*domain.Schedule{
		{ID: 1, PostNumber: 1, StartTime: "09:00", EndTime: "09:30", Status: domain.ScheduleBooked},
		{ID: 2, PostNumber: 2, StartTime: "09:00", EndTime: "09:30", Status: domain.ScheduleAvailable},
	}
	bookings := []*domain.Booking{
		{ScheduleID: ptr.Ptr(int64(1)), Status: domain.BookingConfirmed, CustomerName: "Иван", CustomerPhone: "+7999",
			CarModel: ptr.Ptr("Kia Rio"), Reference: "ref-1"},
		{ScheduleID: ptr.Ptr(int64(2)), Status: domain.BookingCancelled, CustomerName: "Петр"},
	}

	x := NewScheduleXLSX(date)
	require.NoError(t, x.WriteTitle(sp))
	require.NoError(t, x.WriteSchedules(schedules, bookings))

	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))
	require.NoError(t, x.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("2025-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Шиномонтаж, ул. Ленина, 1", rows[0][0])
	assert.Equal(t, "Пост", rows[2][0])
	assert.Equal(t, []string{"1", "09:00", "09:30", "booked", "Иван", "+7999", "Kia Rio", "", "ref-1"}, rows[3])
	// отмененное бронирование в выгрузку не попадает
	assert.Equal(t, []string{"2", "09:00", "09:30", "available"}, rows[4])
}
