package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared across the pipeline. Every fetch and mutation is a
// single attempt; failures are reported once to the caller, never retried.
var (
	// ErrTransientFetch wraps network/server errors while reading records or
	// config. Non-fatal: callers keep showing the last good data set.
	ErrTransientFetch = errors.New("transient fetch failure")

	// ErrMutationFailed wraps persistence failures for config/keyword/user
	// changes. The optimistic local edit carrying the failure is reverted.
	ErrMutationFailed = errors.New("mutation failed")
)

// ContractViolationError reports a record that breaks the upstream scoring
// contract (unknown enum value, missing required timestamp, out-of-range
// score). Such records are rejected, not coerced, so upstream bugs stay
// visible.
type ContractViolationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("data contract violation: %s=%q (%s)", e.Field, e.Value, e.Reason)
}

// IsContractViolation reports whether err is (or wraps) a contract violation.
func IsContractViolation(err error) bool {
	var cv *ContractViolationError
	return errors.As(err, &cv)
}
