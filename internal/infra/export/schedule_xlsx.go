package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

const defaultSheet = "Sheet1"

var scheduleHeader = []string{
	"Пост",
	"Начало",
	"Конец",
	"Статус",
	"Клиент",
	"Телефон",
	"Автомобиль",
	"Госномер",
	"Номер записи",
}

// ScheduleXLSX выгрузка расписания сервисной точки за день в Excel
type ScheduleXLSX struct {
	file  *excelize.File
	sheet string
	row   int
}

// NewScheduleXLSX создает книгу с одним листом на дату
func NewScheduleXLSX(date time.Time) *ScheduleXLSX {
	f := excelize.NewFile()
	sheet := date.Format(domain.DateFormat)
	_ = f.SetSheetName(defaultSheet, sheet)

	return &ScheduleXLSX{file: f, sheet: sheet, row: 1}
}

// WriteTitle пишет заголовок с названием точки
func (x *ScheduleXLSX) WriteTitle(sp *domain.ServicePoint) error {
	title := fmt.Sprintf("%s, %s", sp.Name, sp.Address)
	if err := x.file.SetCellValue(x.sheet, "A1", title); err != nil {
		return err
	}
	x.row = 3
	return nil
}

// WriteSchedules пишет шапку таблицы и строки расписания
// К слоту подставляется активное бронирование, ссылающееся на него
func (x *ScheduleXLSX) WriteSchedules(schedules []*domain.Schedule, bookings []*domain.Booking) error {
	if err := x.writeRow(toInterfaces(scheduleHeader)); err != nil {
		return err
	}

	style, err := x.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		start, _ := excelize.CoordinatesToCellName(1, x.row-1)
		end, _ := excelize.CoordinatesToCellName(len(scheduleHeader), x.row-1)
		_ = x.file.SetCellStyle(x.sheet, start, end, style)
	}

	bySchedule := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		if b.ScheduleID != nil && b.IsActive() {
			bySchedule[*b.ScheduleID] = b
		}
	}

	for _, s := range schedules {
		row := []interface{}{s.PostNumber, s.StartTime.String(), s.EndTime.String(), string(s.Status)}
		if b, ok := bySchedule[s.ID]; ok {
			row = append(row, b.CustomerName, b.CustomerPhone, deref(b.CarModel), deref(b.LicensePlate), b.Reference)
		}
		if err := x.writeRow(row); err != nil {
			return err
		}
	}

	return nil
}

// Write сохраняет книгу в w
func (x *ScheduleXLSX) Write(w io.Writer) error {
	return x.file.Write(w)
}

// Close освобождает ресурсы книги
func (x *ScheduleXLSX) Close() error {
	return x.file.Close()
}

func (x *ScheduleXLSX) writeRow(values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, x.row)
		if err != nil {
			return err
		}
		if err := x.file.SetCellValue(x.sheet, cell, val); err != nil {
			return err
		}
	}
	x.row++
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
