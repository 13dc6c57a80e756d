// Package txmanager управление транзакциями с изоляцией SERIALIZABLE
//
// Гарантия: последовательность "проверка доступности -> вставка" внутри
// DoSerializable не может пересечься с конкурентной такой же последовательностью
// по одним и тем же строкам - проигравшая транзакция получает 40001 и повторяется.
package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/tawanchai/BYD-TestDriveService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrStoreUnavailable возвращается, когда транзакция не прошла даже после повторов
	// Клиенту следует повторить запрос позже; это НЕ конфликт бронирования
	ErrStoreUnavailable = errors.New("txmanager: store temporarily unavailable")
)

const (
	// maxSerializationAttempts попытки при serialization failure / deadlock
	maxSerializationAttempts = 3

	// maxTransientAttempts попытки при обрыве соединения
	maxTransientAttempts = 2

	retryBackoff = 50 * time.Millisecond
)

// TxBeginner источник транзакций
// Реализуется *dbmetrics.DB напрямую и *sql.DB через simpletxmanager
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver приемник метрик повторов (опционально)
type RetryObserver interface {
	IncTxRetry(reason string)
}

// TransactionManager выполняет замыкания внутри транзакций с повторами
type TransactionManager struct {
	db       TxBeginner
	observer RetryObserver
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithRetryObserver подключает сбор метрик повторов
func (m *TransactionManager) WithRetryObserver(observer RetryObserver) *TransactionManager {
	m.observer = observer
	return m
}

// DoSerializable выполняет fn внутри транзакции SERIALIZABLE
// Транзакция кладется в контекст (dbmetrics.WithTx), репозитории подхватывают её автоматически.
// Serialization failure и deadlock повторяются с backoff; обрыв соединения повторяется один раз.
// Ошибки бизнес-логики (возвращенные fn и не являющиеся ошибками стора) не повторяются никогда.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnlySnapshot выполняет fn внутри read-only транзакции REPEATABLE READ
// Используется для консистентного чтения нескольких таблиц одним снапшотом
func (m *TransactionManager) DoReadOnlySnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	serializationAttempts := 0
	transientAttempts := 0

	for {
		if err := ctx.Err(); err != nil {
			// Клиент отключился - не начинаем новую попытку
			return err
		}

		err := m.runOnce(ctx, opts, fn)
		if err == nil {
			return nil
		}

		switch {
		case IsSerializationFailure(err):
			serializationAttempts++
			if serializationAttempts >= maxSerializationAttempts {
				return fmt.Errorf("%w: serialization failure after %d attempts: %v",
					ErrStoreUnavailable, serializationAttempts, err)
			}
			m.observeRetry("serialization")

		case IsTransient(err):
			transientAttempts++
			if transientAttempts >= maxTransientAttempts {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
			m.observeRetry("transient")

		default:
			// Бизнес-ошибка из fn или невосстановимая ошибка стора
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		// Под SERIALIZABLE конфликт чаще всего всплывает именно на COMMIT
		if IsSerializationFailure(err) || IsTransient(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

func (m *TransactionManager) observeRetry(reason string) {
	if m.observer != nil {
		m.observer.IncTxRetry(reason)
	}
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации или deadlock
// Репозитории оборачивают причины через %v, поэтому помимо errors.As проверяем текст pq
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

// IsTransient проверяет, что ошибка вызвана обрывом соединения с базой
func IsTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Класс 08 - connection exception
		return pqErr.Code.Class() == "08"
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}
