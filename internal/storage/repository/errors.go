package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Сентинельные ошибки хранилища. Хендлеры сопоставляют их
// с HTTP статусами 404 и 409.
var (
	// ErrNotFound — запрошенная запись не существует.
	ErrNotFound = errors.New("not found")
	// ErrConflict — нарушение ограничения уникальности.
	// Уникальный индекс в базе — источник истины при гонках
	// check-then-insert.
	ErrConflict = errors.New("already exists")
)

// wrapError приводит низкоуровневые ошибки БД к сентинельным:
// sql.ErrNoRows -> ErrNotFound, unique_violation -> ErrConflict.
func wrapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
