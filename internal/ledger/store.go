// Package ledger holds the ordered transaction history for a session and
// derives the category and summary views the UI renders.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
)

// Store is the append-only, most-recent-first transaction record.
// Store is not safe for concurrent use on its own; the owning session
// serializes access so that no reader can observe a half-applied commit
// (see session.Session).
type Store struct {
	txs []domain.Transaction
}

// NewStore creates a ledger store seeded with the given transactions,
// which must already be ordered most-recent-first.
func NewStore(seed ...domain.Transaction) *Store {
	txs := make([]domain.Transaction, len(seed))
	copy(txs, seed)
	return &Store{txs: txs}
}

// Append inserts a transaction at the head of the ledger. It never fails.
func (s *Store) Append(tx domain.Transaction) {
	s.txs = append([]domain.Transaction{tx}, s.txs...)
}

// All returns a snapshot copy of the ledger, most-recent-first.
func (s *Store) All() []domain.Transaction {
	out := make([]domain.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Recent returns a snapshot of the n most recent transactions, or the
// whole ledger when it holds fewer than n.
func (s *Store) Recent(n int) []domain.Transaction {
	if n > len(s.txs) {
		n = len(s.txs)
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.Transaction, n)
	copy(out, s.txs[:n])
	return out
}

// Len returns the number of transactions in the ledger.
func (s *Store) Len() int {
	return len(s.txs)
}

// Filter returns the transactions whose title or category contains query
// as a case-insensitive substring, preserving ledger order. An empty
// query matches everything. The store is not mutated.
func (s *Store) Filter(query string) []domain.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}

	var out []domain.Transaction
	for _, tx := range s.txs {
		if strings.Contains(strings.ToLower(tx.Title), q) ||
			strings.Contains(strings.ToLower(tx.Category), q) {
			out = append(out, tx)
		}
	}
	return out
}

// AggregateByCategory returns the signed total per category (income
// positive, expense negative). Recomputed on every call; ledger sizes in
// a single session are small enough that caching is not worth carrying.
func (s *Store) AggregateByCategory() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range s.txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.SignedAmount())
	}
	return totals
}

// SignedSum returns the sum of all signed amounts in the ledger. Together
// with the session's initial balance this is the consistency check the
// transfer commit must preserve.
func (s *Store) SignedSum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range s.txs {
		sum = sum.Add(tx.SignedAmount())
	}
	return sum
}
