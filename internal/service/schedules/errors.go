package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда слот расписания не найден
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrServicePointNotFound возвращается, когда сервисная точка не найдена
	ErrServicePointNotFound = errors.New("service point not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен
	ErrInvalidTransition = errors.New("schedule status transition is not allowed")

	// ErrStatusConflict возвращается, когда статус успели изменить параллельно
	ErrStatusConflict = errors.New("schedule status was changed concurrently")

	// ErrHasActiveBookings возвращается при удалении слота с активными бронированиями
	ErrHasActiveBookings = errors.New("schedule has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
