package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	// Доменные метрики
	BookingsTotal        *prometheus.CounterVec
	TimeSlotsGenerated   *prometheus.CounterVec
	SchedulesGenerated   prometheus.Counter
	EventsPublishedTotal *prometheus.CounterVec
	CacheRequestsTotal   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),

		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking operations by action and result",
			ConstLabels: constLabels,
		}, []string{"action", "result"}),

		TimeSlotsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "time_slots_generated_total",
			Help:        "Number of generated recurring time slots",
			ConstLabels: constLabels,
		}, []string{"weekday"}),

		SchedulesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "schedules_generated_total",
			Help:        "Number of generated dated schedule rows",
			ConstLabels: constLabels,
		}),

		EventsPublishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Published domain events by routing key and result",
			ConstLabels: constLabels,
		}, []string{"routing_key", "result"}),

		CacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by tier and result",
			ConstLabels: constLabels,
		}, []string{"tier", "result"}),
	}
}

// RecordHTTPRequest учитывает HTTP запрос (path - шаблон маршрута)
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBooking увеличивает счетчик операций с бронированиями
// Безопасен для nil (метрики выключены)
func (m *Metrics) RecordBooking(action, result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(action, result).Inc()
}

// RecordEvent увеличивает счетчик опубликованных событий
func (m *Metrics) RecordEvent(routingKey string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsPublishedTotal.WithLabelValues(routingKey, result).Inc()
}

// RecordCache увеличивает счетчик обращений к кешу
func (m *Metrics) RecordCache(tier string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(tier, result).Inc()
}

// RecordTimeSlotsGenerated учитывает созданные слоты дня недели
func (m *Metrics) RecordTimeSlotsGenerated(weekday string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.TimeSlotsGenerated.WithLabelValues(weekday).Add(float64(count))
}

// RecordSchedulesGenerated учитывает вставленные строки расписания
func (m *Metrics) RecordSchedulesGenerated(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.SchedulesGenerated.Add(float64(count))
}
