package occupancy

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrSlotTaken возвращается, когда ключ (день, слот) уже занят
	// бронированием или административной блокировкой
	ErrSlotTaken = errors.New("occupancy.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("occupancy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("occupancy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("occupancy.repository: failed to scan row")
)

// Коды ошибок Postgres, означающие проигранную гонку за ключ (day, slot)
const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
)

// IsSlotConflict сообщает, что ошибка означает проигранную гонку за ключ
// (day, slot). Помимо ErrSlotTaken распознает ошибки Postgres: при
// SERIALIZABLE конкурирующая вставка, закоммиченная первой, проявляется
// не нулем затронутых строк, а serialization_failure (40001) - в том
// числе на COMMIT, поэтому проверять нужно и итог транзакции целиком
func IsSlotConflict(err error) bool {
	if errors.Is(err, ErrSlotTaken) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgSerializationFailure || string(pqErr.Code) == pgUniqueViolation
}
