package schedule

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

var scheduleColumns = []string{
	"id",
	"service_point_id",
	"post_number",
	"date",
	"start_time",
	"end_time",
	"status",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписания постов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет слоты расписания
// Уже существующие слоты (точка, пост, дата, начало) не изменяются
// Возвращает количество реально вставленных строк
func (r *Repository) CreateBatch(ctx context.Context, schedules []*domain.Schedule) (int64, error) {
	if len(schedules) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("schedules").
		Columns("service_point_id", "post_number", "date", "start_time", "end_time", "status")
	for _, s := range schedules {
		insertBuilder = insertBuilder.Values(
			s.ServicePointID,
			s.PostNumber,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Status,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (service_point_id, post_number, date, start_time) WHERE deleted_at IS NULL DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
	}

	return inserted, nil
}

// GetByID получает неудаленный слот расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %w", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает неудаленные слоты расписания по фильтру
func (r *Repository) List(ctx context.Context, filter domain.SchedulesFilter) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"service_point_id": filter.ServicePointID, "deleted_at": nil}).
		OrderBy("date ASC", "start_time ASC", "post_number ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.PostNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"post_number": *filter.PostNumber})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

// FindAvailable ищет свободный пост на дату и время начала (пост с наименьшим номером)
// Внутри транзакции строка блокируется, занятые другими транзакциями строки пропускаются
func (r *Repository) FindAvailable(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"service_point_id": servicePointID,
			"date":             date,
			"start_time":       start,
			"status":           domain.ScheduleAvailable,
			"deleted_at":       nil,
		}).
		OrderBy("post_number ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - scan schedule: %w", ErrScanRow, err)
	}

	return s, nil
}

// CountByStart считает неудаленные посты точки на дату и время начала в любом статусе
func (r *Repository) CountByStart(ctx context.Context, servicePointID int64, date time.Time, start types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("schedules").
		Where(squirrel.Eq{
			"service_point_id": servicePointID,
			"date":             date,
			"start_time":       start,
			"deleted_at":       nil,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByStart - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStart - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// TransitionStatus переводит слот в статус next условным UPDATE:
// строка меняется, только если текущий статус допускает переход
func (r *Repository) TransitionStatus(ctx context.Context, id int64, next domain.ScheduleStatus) error {
	sources := domain.ScheduleSourceStatuses(next)
	if len(sources) == 0 {
		return ErrStatusConflict
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Where(squirrel.Eq{"status": sources}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Строка не обновлена: либо ее нет, либо статус не подходит
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusConflict
}

// SoftDelete помечает слот удаленным, если на него нет активных бронирований
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM bookings b WHERE b.schedule_id = schedules.id AND b.status <> ?)",
			domain.BookingCancelled,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrHasActiveBookings
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var s domain.Schedule
	var deletedAt sql.NullTime

	if err := row.Scan(
		&s.ID,
		&s.ServicePointID,
		&s.PostNumber,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&deletedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		s.DeletedAt = &deletedAt.Time
	}
	return &s, nil
}
