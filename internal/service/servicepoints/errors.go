package servicepoints

import "errors"

var (
	// ErrServicePointNotFound возвращается, когда сервисная точка не найдена
	ErrServicePointNotFound = errors.New("service point not found")

	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidWorkingHours возвращается при некорректных рабочих часах
	ErrInvalidWorkingHours = errors.New("invalid working hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
