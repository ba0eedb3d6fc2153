// Package client provides error types for mysqlite operations.
package client

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

// Sentinel errors for common error conditions.
var (
	// ErrConfiguration indicates that neither a complete MySQL credential set
	// nor a SQLite file was configured, or that both were.
	ErrConfiguration = errors.New("mysqlite: invalid configuration")

	// ErrContractViolation indicates an argument of an unsupported shape.
	ErrContractViolation = sqlgen.ErrContractViolation

	// ErrNoTable indicates that no table was given and no default is set.
	ErrNoTable = sqlgen.ErrNoTable

	// ErrUnreachable indicates that the backend could not be connected to.
	ErrUnreachable = database.ErrUnreachable

	// ErrOutOfRange indicates a row index outside a Response.
	ErrOutOfRange = errors.New("mysqlite: index out of range")

	// ErrUnknownColumns indicates that the column names of positional rows
	// could not be determined.
	ErrUnknownColumns = errors.New("mysqlite: cannot determine columns")

	// ErrNotSingleRow indicates direct column access on a Response that does
	// not hold exactly one row.
	ErrNotSingleRow = errors.New("mysqlite: response does not hold exactly one row")

	// ErrNoRowsMatched indicates that a row write-back matched nothing.
	ErrNoRowsMatched = errors.New("mysqlite: no rows matched")
)

// Error is a rich error type with additional context.
type Error struct {
	// Op is the operation that failed.
	Op string

	// Message is the human-readable error message.
	Message string

	// Table is the affected table (if applicable).
	Table string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("mysqlite [%s] %s: %s", e.Op, e.Table, e.Message)
	}
	return fmt.Sprintf("mysqlite [%s] %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op, table string, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Table:   table,
		Cause:   cause,
	}
}

// IsContractViolation checks if an error is a caller contract violation.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}

// IsUnreachable checks if an error is a connectivity failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsOutOfRange checks if an error is an out-of-range row access.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}
