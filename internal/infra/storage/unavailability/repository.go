package unavailability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/dbmetrics"
	"github.com/tawanchai/BYD-TestDriveService/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"branch",
	"block_date",
	"car_model",
	"start_time",
	"end_time",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий для работы с блокировками автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, u *domain.UnavailabilityBlock) (*domain.UnavailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailability_blocks").
		Columns(
			"branch",
			"block_date",
			"car_model",
			"start_time",
			"end_time",
			"reason",
			"created_by",
		).
		Values(
			u.Branch,
			u.BlockDate,
			u.CarModel,
			u.StartTime,
			u.EndTime,
			u.Reason,
			u.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time

	return u, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.UnavailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("unavailability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	u, err := r.scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return u, nil
}

// GetByBranchWithFilter получает блокировки филиала с фильтрацией
// Date выбирает блокировки конкретного дня; FromDate - все начиная с даты
// (для списка предстоящих блокировок)
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("unavailability_blocks").
		Where(squirrel.Eq{"branch": filter.Branch})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"block_date": *filter.Date})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"block_date": *filter.FromDate})
	}
	if filter.CarModel != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"car_model": *filter.CarModel})
	}

	// Порядок показа как в списке предстоящих блокировок
	selectBuilder = selectBuilder.OrderBy("block_date ASC, start_time ASC, car_model ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// Delete удаляет блокировку (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unavailability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBlock(row rowScanner) (*domain.UnavailabilityBlock, error) {
	var u domain.UnavailabilityBlock
	var createdAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Branch,
		&u.BlockDate,
		&u.CarModel,
		&u.StartTime,
		&u.EndTime,
		&u.Reason,
		&u.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt = createdAt.Time

	return &u, nil
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.UnavailabilityBlock, error) {
	blocks := make([]*domain.UnavailabilityBlock, 0)

	for rows.Next() {
		u, err := r.scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
