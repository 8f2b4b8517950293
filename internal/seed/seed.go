// Package seed provides the demo fixtures the session boots with. There
// is no persistence layer; every run starts from this data.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/session"
)

// Account returns the demo account.
func Account() domain.Account {
	return domain.Account{
		DisplayName:   "Alexandre Silva",
		Balance:       decimal.NewFromFloat(12450.60),
		Savings:       decimal.NewFromFloat(45000.00),
		AccountNumber: "1234567-8",
		Agency:        "0001",
	}
}

// Transactions returns the demo ledger history, most-recent-first.
func Transactions() []domain.Transaction {
	return []domain.Transaction{
		{
			ID:       "1",
			Title:    "Fogo de Chao Restaurant",
			Amount:   decimal.NewFromFloat(350.00),
			Date:     date(2023, time.October, 25),
			Category: "Dining",
			Kind:     domain.KindExpense,
		},
		{
			ID:       "2",
			Title:    "Tech Corp Salary",
			Amount:   decimal.NewFromFloat(8500.00),
			Date:     date(2023, time.October, 5),
			Category: "Income",
			Kind:     domain.KindIncome,
		},
		{
			ID:       "3",
			Title:    "Netflix",
			Amount:   decimal.NewFromFloat(55.90),
			Date:     date(2023, time.October, 10),
			Category: "Entertainment",
			Kind:     domain.KindExpense,
		},
		{
			ID:       "4",
			Title:    "Shell Gas Station",
			Amount:   decimal.NewFromFloat(210.00),
			Date:     date(2023, time.October, 12),
			Category: "Transport",
			Kind:     domain.KindExpense,
		},
		{
			ID:       "5",
			Title:    "Investment Sale",
			Amount:   decimal.NewFromFloat(1200.00),
			Date:     date(2023, time.October, 15),
			Category: "Investments",
			Kind:     domain.KindIncome,
		},
	}
}

// Cards returns the demo payment cards.
func Cards() []domain.Card {
	return []domain.Card{
		{
			ID:       "c1",
			LastFour: "4589",
			Brand:    "Visa",
			Type:     "Credit",
			Limit:    decimal.NewFromInt(15000),
			Used:     decimal.NewFromInt(4200),
		},
		{
			ID:       "c2",
			LastFour: "1234",
			Brand:    "Mastercard",
			Type:     "Credit",
			Limit:    decimal.NewFromInt(5000),
			Used:     decimal.Zero,
		},
	}
}

// Contacts returns the demo recent transfer recipients.
func Contacts() []domain.Contact {
	return []domain.Contact{
		{Name: "Beatriz Santos", Key: "bsantos@email.com"},
		{Name: "Carlos Oliveira", Key: "049.***.***-21"},
	}
}

// Session builds a fully seeded session.
func Session() *session.Session {
	return session.New(Account(), Transactions()...)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
