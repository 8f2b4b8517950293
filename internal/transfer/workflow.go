// Package transfer drives the instant-payment flow: a small state
// machine that collects a payee and amount, submits to the payment rail,
// and on settlement commits exactly one ledger entry and one balance
// debit through the session's single commit entry point.
package transfer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/rail"
	"github.com/aalves77/banco/internal/session"
)

// State is the workflow position.
type State string

const (
	// StateIdle means no transfer is underway.
	StateIdle State = "idle"
	// StateComposing means payee/amount entry is open.
	StateComposing State = "composing"
	// StateSubmitting means a submission is awaiting settlement. A second
	// Submit is rejected until it resolves.
	StateSubmitting State = "submitting"
	// StateSettled means the last submission committed. The workflow
	// returns to idle on its own after a short display hold.
	StateSettled State = "settled"
)

// DefaultPayeeLabel substitutes an empty payee key at submit time. The
// flow is deliberately lenient here rather than rejecting the submission.
const DefaultPayeeLabel = "unknown contact"

// TransferCategory is the ledger category stamped on committed transfers.
const TransferCategory = "Transfer"

// Options tune workflow timing. The zero value is usable: no settled
// hold (manual Reset) and the wall clock.
type Options struct {
	// SettledHold is how long the workflow stays in StateSettled before
	// auto-returning to idle. Zero disables the auto-return.
	SettledHold time.Duration

	// Now overrides the clock used to date committed transactions.
	Now func() time.Time
}

// Workflow is a single-instance instant-transfer state machine. Safe for
// concurrent use; concurrent submissions are rejected rather than queued.
type Workflow struct {
	sess *session.Session
	rail rail.Rail
	log  zerolog.Logger

	settledHold time.Duration
	now         func() time.Time

	mu      sync.Mutex
	state   State
	payee   string
	amount  decimal.Decimal
	lastErr error
	seq     int
}

// New creates an idle workflow bound to the session and rail.
func New(sess *session.Session, r rail.Rail, log zerolog.Logger, opts Options) *Workflow {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Workflow{
		sess:        sess,
		rail:        r,
		log:         log,
		settledHold: opts.SettledHold,
		now:         now,
		state:       StateIdle,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err returns the error surfaced by the last rejected or failed
// submission, or nil.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Begin opens payee/amount entry. Valid only from idle.
func (w *Workflow) Begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		return ErrNotIdle
	}
	w.state = StateComposing
	w.payee = ""
	w.amount = decimal.Zero
	w.lastErr = nil
	return nil
}

// SetPayee records the payee key being entered. Pure field update; no
// validation happens until Submit.
func (w *Workflow) SetPayee(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposing {
		return ErrNotComposing
	}
	w.payee = key
	return nil
}

// SetAmount records the amount being entered. Pure field update; no
// validation against the balance until Submit.
func (w *Workflow) SetAmount(amount decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposing {
		return ErrNotComposing
	}
	w.amount = amount
	return nil
}

// Cancel abandons a transfer being composed and returns to idle,
// discarding entered fields. A submission already in flight cannot be
// cancelled; the rail is irrevocable once called.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposing {
		return ErrNotComposing
	}
	w.reset()
	return nil
}

// Submit validates the entered transfer, runs the rail settlement and,
// on success, commits the ledger entry and balance debit as one step.
// It blocks for the settlement round trip; callers that need the UI free
// run it in its own goroutine. A second Submit while one is in flight
// returns ErrSubmissionInFlight and commits nothing.
func (w *Workflow) Submit(ctx context.Context, payee string, amount decimal.Decimal) (domain.Transaction, error) {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return domain.Transaction{}, ErrSubmissionInFlight
	case StateComposing:
		// proceed
	default:
		w.mu.Unlock()
		return domain.Transaction{}, ErrNotComposing
	}

	if !amount.IsPositive() {
		err := &ValidationError{Field: "amount", Reason: "must be greater than zero"}
		w.lastErr = err
		w.mu.Unlock()
		return domain.Transaction{}, err
	}
	if balance := w.sess.Balance(); amount.GreaterThan(balance) {
		err := &ValidationError{Field: "amount", Reason: "exceeds available balance " + balance.StringFixed(2)}
		w.lastErr = err
		w.mu.Unlock()
		return domain.Transaction{}, err
	}

	payee = strings.TrimSpace(payee)
	if payee == "" {
		payee = DefaultPayeeLabel
	}

	req := domain.TransferRequest{
		ID:          uuid.NewString(),
		PayeeKey:    payee,
		Amount:      amount,
		SubmittedAt: w.now(),
	}

	w.state = StateSubmitting
	w.payee = payee
	w.amount = amount
	w.lastErr = nil
	w.mu.Unlock()

	// Rail round trip runs outside the lock so reads stay live; the
	// Submitting state gate keeps this instance self-exclusive.
	if err := w.rail.Settle(ctx, req); err != nil {
		settleErr := &SettlementError{Err: err}
		w.log.Warn().Err(err).Str("request_id", req.ID).Msg("Settlement failed")

		w.mu.Lock()
		w.state = StateComposing
		w.lastErr = settleErr
		w.mu.Unlock()
		return domain.Transaction{}, settleErr
	}

	tx := domain.Transaction{
		ID:       uuid.NewString(),
		Title:    "transfer to " + payee,
		Amount:   amount,
		Date:     w.now(),
		Category: TransferCategory,
		Kind:     domain.KindExpense,
	}

	// Balance is only touched here, after settlement: an in-flight
	// submission is never double-countable against the balance check of
	// a later one.
	if err := w.sess.CommitTransfer(tx); err != nil {
		settleErr := &SettlementError{Err: err}
		w.mu.Lock()
		w.state = StateComposing
		w.lastErr = settleErr
		w.mu.Unlock()
		return domain.Transaction{}, settleErr
	}

	w.log.Info().
		Str("transaction_id", tx.ID).
		Str("payee", payee).
		Str("amount", amount.StringFixed(2)).
		Msg("Transfer settled")

	w.mu.Lock()
	w.state = StateSettled
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	if w.settledHold > 0 {
		time.AfterFunc(w.settledHold, func() { w.dismiss(seq) })
	}
	return tx, nil
}

// Reset returns a settled workflow to idle immediately, for callers that
// dismiss the confirmation themselves.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSettled {
		w.reset()
	}
}

// dismiss is the timed auto-return from StateSettled. The sequence guard
// keeps a stale timer from dismissing a later settlement early.
func (w *Workflow) dismiss(seq int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSettled && w.seq == seq {
		w.reset()
	}
}

// reset clears entered fields and returns to idle. Callers hold w.mu.
func (w *Workflow) reset() {
	w.state = StateIdle
	w.payee = ""
	w.amount = decimal.Zero
}
