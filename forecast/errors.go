/*
errors.go - Error types for the projection engine

PURPOSE:
  All engine-level error types in one place. Rule-level errors live in
  recur; the engine wraps them with the obligation that carried the bad
  rule so the HTTP layer can name the offender.

ERROR CATEGORIES:
  1. Window errors - unbounded or inverted query ranges
  2. Baseline errors - no settled balance for the projected account
  3. Rule errors - recur.ErrInvalidRule / recur.ErrUnboundedGeneration,
     wrapped with obligation context

PROPAGATION:
  A failed expander fails the whole per-account projection; no partial
  results are produced for that account. Bulk projections continue with
  the remaining accounts and record the failure. Unresolvable wishlist
  items are intentionally silent and never surface here.

SEE ALSO:
  - recur/recurrence.go: rule validation errors
  - engine.go: per-account failure isolation
*/
package forecast

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingBalance is returned when no present-day balance baseline
	// exists for the projected account. Neither past nor future balances can
	// be computed without it; defaulting to zero would silently mislead.
	ErrMissingBalance = errors.New("missing balance baseline")

	// ErrUnboundedWindow is returned for query windows that are missing an
	// upper bound, inverted, or wider than the projection horizon.
	ErrUnboundedWindow = errors.New("unbounded projection window")

	// ErrAccountNotFound is returned when a projection names an account the
	// input does not contain.
	ErrAccountNotFound = errors.New("account not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnboundedWindowError explains why a window was rejected.
type UnboundedWindowError struct {
	Reason string
}

func (e *UnboundedWindowError) Error() string {
	return fmt.Sprintf("unbounded projection window: %s", e.Reason)
}

func (e *UnboundedWindowError) Unwrap() error { return ErrUnboundedWindow }

// ObligationError wraps a rule failure with the obligation that carried it.
type ObligationError struct {
	Kind string // "expense", "income", "loan", "transfer"
	ID   uuid.UUID
	Err  error
}

func (e *ObligationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.ID, e.Err)
}

func (e *ObligationError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid input rather
// than an engine fault. The HTTP layer maps these to 4xx responses.
func IsClientError(err error) bool {
	return errors.Is(err, recur.ErrInvalidRule) ||
		errors.Is(err, ErrUnboundedWindow) ||
		errors.Is(err, ErrAccountNotFound)
}
