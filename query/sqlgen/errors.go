package sqlgen

import "errors"

var (
	// ErrContractViolation indicates an argument of an unsupported shape, such as a
	// predicate that is neither raw text nor a column/value mapping.
	ErrContractViolation = errors.New("mysqlite: contract violation")

	// ErrNoTable indicates that neither the operation nor the facade named a table.
	ErrNoTable = errors.New("mysqlite: no table specified")
)
