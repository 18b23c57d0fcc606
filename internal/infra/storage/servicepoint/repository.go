package servicepoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/psqlbuilder"
)

var servicePointColumns = []string{
	"id",
	"partner_id",
	"name",
	"address",
	"working_hours",
	"post_count",
	"slot_duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий сервисных точек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сервисных точек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сервисную точку
func (r *Repository) Create(ctx context.Context, sp *domain.ServicePoint) (*domain.ServicePoint, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_points").
		Columns(
			"partner_id",
			"name",
			"address",
			"working_hours",
			"post_count",
			"slot_duration_minutes",
			"status",
		).
		Values(
			sp.PartnerID,
			sp.Name,
			sp.Address,
			sp.WorkingHours,
			sp.PostCount,
			sp.SlotDurationMinutes,
			sp.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return sp, nil
}

// GetByID получает сервисную точку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(servicePointColumns...).
		From("service_points").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	sp, err := scanServicePoint(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServicePointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service point: %w", ErrScanRow, err)
	}

	return sp, nil
}

// List возвращает сервисные точки с фильтрацией по партнеру и статусу
func (r *Repository) List(ctx context.Context, filter domain.ServicePointsFilter) ([]*domain.ServicePoint, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(servicePointColumns...).
		From("service_points").
		OrderBy("id ASC")

	if filter.PartnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"partner_id": *filter.PartnerID})
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

	points := make([]*domain.ServicePoint, 0)
	for rows.Next() {
		sp, err := scanServicePoint(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		points = append(points, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return points, nil
}

// Update частично обновляет сервисную точку (только переданные поля)
func (r *Repository) Update(ctx context.Context, id int64, update domain.ServicePointUpdate) error {
	if update.IsEmpty() {
		return ErrNothingToUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("service_points").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Address != nil {
		updateBuilder = updateBuilder.Set("address", *update.Address)
	}
	if update.WorkingHours != nil {
		updateBuilder = updateBuilder.Set("working_hours", update.WorkingHours)
	}
	if update.PostCount != nil {
		updateBuilder = updateBuilder.Set("post_count", *update.PostCount)
	}
	if update.SlotDurationMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_duration_minutes", *update.SlotDurationMinutes)
	}
	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
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
		return ErrServicePointNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanServicePoint(row rowScanner) (*domain.ServicePoint, error) {
	var sp domain.ServicePoint
	if err := row.Scan(
		&sp.ID,
		&sp.PartnerID,
		&sp.Name,
		&sp.Address,
		&sp.WorkingHours,
		&sp.PostCount,
		&sp.SlotDurationMinutes,
		&sp.Status,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sp, nil
}
