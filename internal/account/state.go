// Package account holds the mutable balance state for the session
// account. ApplyDelta is the sole mutator and must only be called by the
// session commit path, paired with a matching ledger append.
package account

import (
	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
)

// State wraps the session account. Like ledger.Store it carries no lock
// of its own; the owning session serializes access.
type State struct {
	acct domain.Account
}

// NewState creates account state from the seeded account.
func NewState(acct domain.Account) *State {
	return &State{acct: acct}
}

// ApplyDelta adds a signed amount to the balance: negative for an
// expense, positive for income. Bounds are the caller's responsibility;
// the transfer workflow validates against the balance before commit.
func (s *State) ApplyDelta(delta decimal.Decimal) {
	s.acct.Balance = s.acct.Balance.Add(delta)
}

// Balance returns the current balance.
func (s *State) Balance() decimal.Decimal {
	return s.acct.Balance
}

// Savings returns the savings balance. Transfers never touch it.
func (s *State) Savings() decimal.Decimal {
	return s.acct.Savings
}

// Account returns a copy of the full account for display.
func (s *State) Account() domain.Account {
	return s.acct
}
