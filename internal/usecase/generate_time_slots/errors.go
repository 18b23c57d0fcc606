package generate_time_slots

import "errors"

var (
	// ErrServicePointNotFound возвращается, когда сервисная точка не найдена
	ErrServicePointNotFound = errors.New("generate_time_slots: service point not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет точкой
	ErrAccessDenied = errors.New("generate_time_slots: access denied")

	// ErrInvalidSlotDuration возвращается при длительности слота вне допустимого диапазона
	ErrInvalidSlotDuration = errors.New("generate_time_slots: invalid slot duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_time_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Дни, обработанные до ошибки, остаются перегенерированными
	ErrInternal = errors.New("generate_time_slots: internal error")
)
