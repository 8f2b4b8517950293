package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	// KindIncome is money entering the account.
	KindIncome TransactionKind = "income"
	// KindExpense is money leaving the account.
	KindExpense TransactionKind = "expense"
)

// Transaction is one immutable ledger entry. Amount is always
// non-negative; Kind carries the direction.
type Transaction struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category"`
	Kind     TransactionKind `json:"kind"`
}

// SignedAmount returns the amount with its ledger sign applied:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
