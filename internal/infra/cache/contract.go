package cache

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Metrics счетчик попаданий в кеш
type Metrics interface {
	RecordCache(tier string, hit bool)
}
