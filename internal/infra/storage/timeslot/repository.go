package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

var timeSlotColumns = []string{
	"id",
	"service_point_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
	"max_appointments",
	"created_at",
	"updated_at",
}

// Repository репозиторий повторяющихся слотов сервисных точек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// DeleteByDay удаляет все слоты сервисной точки на день недели
// Возвращает количество удаленных слотов
func (r *Repository) DeleteByDay(ctx context.Context, servicePointID int64, day time.Weekday) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"service_point_id": servicePointID, "day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDay - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDay - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDay - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// CreateBatch вставляет слоты одним запросом
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns(
			"service_point_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_available",
			"max_appointments",
		)
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(
			slot.ServicePointID,
			int(slot.DayOfWeek),
			slot.StartTime,
			slot.EndTime,
			slot.IsAvailable,
			slot.MaxAppointments,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ListByServicePoint возвращает слоты сервисной точки
// Если day != nil, только слоты этого дня недели
func (r *Repository) ListByServicePoint(ctx context.Context, servicePointID int64, day *time.Weekday) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		OrderBy("day_of_week ASC", "start_time ASC")

	if day != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": int(*day)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServicePoint - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServicePoint - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByServicePoint - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByServicePoint - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// FindCovering ищет доступный слот дня недели, для которого start <= at < end
// Внутри транзакции строка слота блокируется (FOR UPDATE), чтобы параллельные
// бронирования одного слота выполнялись последовательно
func (r *Repository) FindCovering(ctx context.Context, servicePointID int64, day time.Weekday, at types.TimeString) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"service_point_id": servicePointID,
			"day_of_week":      int(day),
			"is_available":     true,
		}).
		Where(squirrel.LtOrEq{"start_time": at}).
		Where(squirrel.Gt{"end_time": at}).
		OrderBy("start_time ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - scan time slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// Update применяет ручную правку слота
func (r *Repository) Update(ctx context.Context, id int64, update domain.TimeSlotUpdate) error {
	if update.IsAvailable == nil && update.MaxAppointments == nil {
		return ErrNothingToUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("time_slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.IsAvailable != nil {
		updateBuilder = updateBuilder.Set("is_available", *update.IsAvailable)
	}
	if update.MaxAppointments != nil {
		updateBuilder = updateBuilder.Set("max_appointments", *update.MaxAppointments)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTimeSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var dayOfWeek int

	if err := row.Scan(
		&slot.ID,
		&slot.ServicePointID,
		&dayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.MaxAppointments,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	slot.DayOfWeek = time.Weekday(dayOfWeek)
	return &slot, nil
}
