package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the single session account. Balance is signed and may be
// drawn down by expenses; Savings is untouched by transfers.
type Account struct {
	DisplayName   string          `json:"display_name"`
	Balance       decimal.Decimal `json:"balance"`
	Savings       decimal.Decimal `json:"savings"`
	AccountNumber string          `json:"account_number"`
	Agency        string          `json:"agency"`
}

// TransferRequest is a submitted instant-transfer order as handed to the
// payment rail. PayeeKey is opaque here: an email, phone, tax id, or
// random key.
type TransferRequest struct {
	ID          string          `json:"id"`
	PayeeKey    string          `json:"payee_key"`
	Amount      decimal.Decimal `json:"amount"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// Contact is a recent transfer recipient offered for quick selection
// when composing a transfer. Key follows the same opaque convention as
// TransferRequest.PayeeKey.
type Contact struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Card is one payment card shown by the cards view. Read-only in this
// core; card management mutations are out of scope.
type Card struct {
	ID       string          `json:"id"`
	LastFour string          `json:"last_four"`
	Brand    string          `json:"brand"`
	Type     string          `json:"type"`
	Limit    decimal.Decimal `json:"limit"`
	Used     decimal.Decimal `json:"used"`
}
