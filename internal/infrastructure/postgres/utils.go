package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p. ej. monto >= 0.
func isCheckViolation(err error) bool {
	return pgErrorCode(err) == codeCheckViolation
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// isNumericOutOfRange verifica si un valor no entra en la precisión de la columna (22003).
func isNumericOutOfRange(err error) bool {
	return pgErrorCode(err) == codeNumericOutOfRange
}
