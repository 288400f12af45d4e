package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/drvet-api/internal/domain"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// checkViolation traduce un CHECK fallido (quantity >= 0, categoría, unidad) a ValidationError.
// Devuelve nil si err no es una violación de CHECK.
func checkViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgCheckViolation {
		return nil
	}
	return domain.NewValidationError(pgErr.ColumnName, "violates constraint "+pgErr.ConstraintName)
}
