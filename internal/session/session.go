// Package session is the app-level container that owns the ledger and the
// account state for one local banking session. Views read through it;
// the only mutation it exposes is CommitTransfer, which applies a ledger
// append and the matching balance debit as one step under one lock, so
// no reader can ever see one without the other.
package session

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/account"
	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/ledger"
)

// Snapshot is a point-in-time read-only view of the session handed to
// the assistant as advice context. Taking one never mutates the session.
type Snapshot struct {
	DisplayName  string
	Balance      decimal.Decimal
	Savings      decimal.Decimal
	Transactions []domain.Transaction
}

// Session owns the ledger store and account state behind a single
// RWMutex. Safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	ledger *ledger.Store
	acct   *account.State
}

// New creates a session from a seeded account and transaction history
// (most-recent-first).
func New(acct domain.Account, history ...domain.Transaction) *Session {
	return &Session{
		ledger: ledger.NewStore(history...),
		acct:   account.NewState(acct),
	}
}

// CommitTransfer applies a settled transfer to the session: the
// transaction is prepended to the ledger and its signed amount is applied
// to the balance in the same critical section. This is the single commit
// entry point; nothing else in the module mutates ledger or balance.
func (s *Session) CommitTransfer(tx domain.Transaction) error {
	if tx.Amount.IsNegative() {
		return fmt.Errorf("session: commit transfer %s: negative amount %s", tx.ID, tx.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Append(tx)
	s.acct.ApplyDelta(tx.SignedAmount())
	return nil
}

// Balance returns the current account balance.
func (s *Session) Balance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acct.Balance()
}

// Savings returns the current savings balance.
func (s *Session) Savings() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acct.Savings()
}

// Account returns a copy of the session account.
func (s *Session) Account() domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acct.Account()
}

// Transactions returns a snapshot of the full ledger, most-recent-first.
func (s *Session) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.All()
}

// RecentTransactions returns a snapshot of the n most recent entries.
func (s *Session) RecentTransactions(n int) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Recent(n)
}

// FilterTransactions returns the ledger entries matching query by
// case-insensitive substring over title and category.
func (s *Session) FilterTransactions(query string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Filter(query)
}

// SpendingByCategory returns the signed per-category totals.
func (s *Session) SpendingByCategory() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.AggregateByCategory()
}

// AdviceSnapshot returns the read-only context the assistant sends with
// each query: display name, balances and the full transaction history at
// call time.
func (s *Session) AdviceSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct := s.acct.Account()
	return Snapshot{
		DisplayName:  acct.DisplayName,
		Balance:      acct.Balance,
		Savings:      acct.Savings,
		Transactions: s.ledger.All(),
	}
}
