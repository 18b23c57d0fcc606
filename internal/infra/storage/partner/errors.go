package partner

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner.repository: partner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("partner.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("partner.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("partner.repository: failed to scan row")
)
