package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"cashlytic-pos/apperror"
)

// SQLSTATE codes raised by the schema and its stored functions
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeNoDataFound         = "P0002"
	codeRaiseException      = "P0001"
)

// Message markers raised by stored functions that predate the error codes
var (
	markerNotFound  = "does not exist"
	markerSold      = "has been sold"
	markerMadeSales = "has made sales"
)

// Operations whose foreign-key failures mean "still referenced" rather than
// "unknown reference".
const (
	onWrite = iota
	onDelete
)

// classifyError maps a storage error onto an apperror kind. SQLSTATE codes are
// used when present; message markers are the fallback.
func classifyError(op string, id int64, err error, mode int) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	code := ""
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code = pgErr.Code
		message = pgErr.Message
	}

	var appErr *apperror.Error
	switch {
	case code == codeNoDataFound, untyped(code) && strings.Contains(message, markerNotFound):
		appErr = apperror.NotFound(op, "%s", message)
	case code == codeForeignKeyViolation && mode == onWrite:
		appErr = apperror.Reference(op, "%s", message)
	case code == codeForeignKeyViolation,
		code == codeUniqueViolation,
		strings.Contains(message, markerSold),
		strings.Contains(message, markerMadeSales):
		appErr = apperror.Constraint(op, "%s", message)
	default:
		appErr = apperror.Boundary(op, err)
	}

	if appErr.Cause == nil {
		appErr.WithCause(err)
	}
	return appErr.WithID(id)
}

// untyped reports whether a code carries no meaning beyond "raised by a function"
func untyped(code string) bool {
	return code == "" || code == codeRaiseException
}
