package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

var (
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
	ErrNotNullConstraint    = errors.New("not null constraint violation")
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgConnectionException = "08000"
	pgConnectionFailure   = "08006"
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError maps a store error to an ApiErr. Missing rows become 404,
// constraint violations become 409 or 400 and anything else is a 500.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause == nil {
		return &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        ErrDatabaseQuery,
			Details:    details,
		}
	}

	var pgErr *pgconn.PgError
	hasPgErr := errors.As(cause, &pgErr)

	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrDuplicatedKey) || hasPgErr && pgErr.Code == pgUniqueViolation:
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
			Details:    details,
			Field:      constraintField(pgErr),
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated) || hasPgErr && pgErr.Code == pgForeignKeyViolation:
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("invalid reference in %s: %w", entity, ErrForeignKeyConstraint),
			Details:    "The referenced resource does not exist or cannot be linked",
			Cause:      cause,
		}
	case hasPgErr && pgErr.Code == pgNotNullViolation:
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("missing value in %s: %w", entity, ErrNotNullConstraint),
			Details:    details,
			Field:      pgErr.ColumnName,
			Cause:      cause,
		}
	case hasPgErr && (pgErr.Code == pgConnectionException || pgErr.Code == pgConnectionFailure):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func constraintField(pgErr *pgconn.PgError) string {
	if pgErr == nil {
		return ""
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return pgErr.ConstraintName
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
