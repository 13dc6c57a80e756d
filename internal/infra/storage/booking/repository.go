package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/dbmetrics"
	"github.com/tawanchai/BYD-TestDriveService/pkg/psqlbuilder"
)

// pgUniqueViolation код PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"branch",
	"booking_date",
	"time_slot",
	"car_model",
	"customer_name",
	"phone_number",
	"salesperson",
	"notes",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями тест-драйвов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Уникальный индекс uniq_bookings_cell гарантирует, что две конкурентные вставки
// в одну ячейку (branch, date, slot, model) не пройдут обе: проигравшая получает
// 23505, который транслируется в ErrCellTaken. Это страховка уровня схемы
// в дополнение к проверке доступности внутри сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"branch",
			"booking_date",
			"time_slot",
			"car_model",
			"customer_name",
			"phone_number",
			"salesperson",
			"notes",
			"created_by",
		).
		Values(
			b.Branch,
			b.BookingDate,
			b.TimeSlot,
			b.CarModel,
			b.CustomerName,
			b.PhoneNumber,
			b.Salesperson,
			b.Notes,
			b.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrCellTaken
		}
		// Ошибки сериализации отдаем как есть - их классифицирует txmanager
		if errors.As(err, &pqErr) && (pqErr.Code == "40001" || pqErr.Code == "40P01") {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByBranchWithFilter получает бронирования филиала с фильтрацией
// Поддерживает фильтрацию по дате и модели автомобиля.
//
// Если фильтр помечен ForUpdate и вызов идет внутри транзакции, строки
// блокируются (FOR UPDATE) - используется writer-ом при проверке конфликтов,
// чтобы конкурентная транзакция дождалась исхода текущей.
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"branch": filter.Branch})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.CarModel != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"car_model": *filter.CarModel})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("time_slot ASC, car_model ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, time_slot DESC")
	}

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование (физическое удаление)
// Исправления выполняются как удаление + повторное создание, поэтому
// история не сохраняется намеренно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Branch,
		&b.BookingDate,
		&b.TimeSlot,
		&b.CarModel,
		&b.CustomerName,
		&b.PhoneNumber,
		&b.Salesperson,
		&b.Notes,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
