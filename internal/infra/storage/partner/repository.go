package partner

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

var partnerColumns = []string{
	"id",
	"name",
	"contact_phone",
	"contact_email",
	"created_at",
	"updated_at",
}

// Repository репозиторий партнеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория партнеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает партнера
func (r *Repository) Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("partners").
		Columns("name", "contact_phone", "contact_email").
		Values(partner.Name, partner.ContactPhone, partner.ContactEmail).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&partner.ID,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return partner, nil
}

// GetByID получает партнера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(partnerColumns...).
		From("partners").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	partner, err := scanPartner(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan partner: %w", ErrScanRow, err)
	}

	return partner, nil
}

// List возвращает всех партнеров, отсортированных по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(partnerColumns...).
		From("partners").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	partners := make([]*domain.Partner, 0)
	for rows.Next() {
		partner, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		partners = append(partners, partner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return partners, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	var partner domain.Partner
	if err := row.Scan(
		&partner.ID,
		&partner.Name,
		&partner.ContactPhone,
		&partner.ContactEmail,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &partner, nil
}
