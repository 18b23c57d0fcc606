package generate_schedules

import "errors"

var (
	// ErrServicePointNotFound возвращается, когда сервисная точка не найдена
	ErrServicePointNotFound = errors.New("generate_schedules: service point not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет точкой
	ErrAccessDenied = errors.New("generate_schedules: access denied")

	// ErrInvalidDateRange возвращается при некорректном периоде генерации
	ErrInvalidDateRange = errors.New("generate_schedules: invalid date range")

	// ErrInvalidSlotDuration возвращается при длительности слота вне допустимого диапазона
	ErrInvalidSlotDuration = errors.New("generate_schedules: invalid slot duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_schedules: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_schedules: internal error")
)
