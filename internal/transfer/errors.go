package transfer

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Flow errors returned when an operation is invoked in the wrong state.
var (
	// ErrNotIdle is returned by Begin when a flow is already underway.
	ErrNotIdle = errors.New("transfer: flow already in progress")
	// ErrNotComposing is returned by field updates, Submit and Cancel
	// outside the Composing state.
	ErrNotComposing = errors.New("transfer: no transfer being composed")
	// ErrSubmissionInFlight is returned by Submit while a previous
	// submission is still awaiting settlement.
	ErrSubmissionInFlight = errors.New("transfer: submission already in flight")
)

// ValidationError rejects a submission before it reaches the rail. The
// workflow stays in Composing and nothing is committed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transfer: invalid %s: %s", e.Field, e.Reason)
}

// SettlementError reports a failed payment-rail round trip. The default
// simulated rail never produces one; it exists so a real rail client can
// fail without the workflow committing anything.
type SettlementError struct {
	Err error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("transfer: settlement failed: %v", e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

// ParseAmount converts user-entered text into a decimal amount. A value
// that does not parse is a ValidationError, same as a non-positive one
// at submit time.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	return amount, nil
}
