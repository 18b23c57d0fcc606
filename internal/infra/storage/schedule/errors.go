package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда слот расписания не найден (или удален)
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrStatusConflict возвращается, когда текущий статус не допускает переход
	// (в том числе если параллельный запрос успел сменить статус раньше)
	ErrStatusConflict = errors.New("schedule.repository: status transition conflict")

	// ErrHasActiveBookings возвращается при попытке удалить слот с активными бронированиями
	ErrHasActiveBookings = errors.New("schedule.repository: schedule has active bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
