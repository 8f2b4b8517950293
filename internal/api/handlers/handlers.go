package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/api/middleware"
	"github.com/aalves77/banco/internal/assistant"
	"github.com/aalves77/banco/internal/cards"
	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/session"
	"github.com/aalves77/banco/internal/transfer"
)

// AccountHandler serves the account snapshot.
type AccountHandler struct {
	sess *session.Session
	log  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(sess *session.Session, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{sess: sess, log: log}
}

// GetAccount handles GET /api/account
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.sess.Account())
}

// TransactionsHandler serves the ledger views.
type TransactionsHandler struct {
	sess *session.Session
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(sess *session.Session, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{sess: sess, log: log}
}

// ListTransactions handles GET /api/transactions. An optional ?q= filters
// by case-insensitive substring over title and category; an optional
// ?limit= caps the result to the most recent N entries.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}

	var txs []domain.Transaction
	switch {
	case limit > 0 && query == "":
		txs = h.sess.RecentTransactions(limit)
	default:
		txs = h.sess.FilterTransactions(query)
		if limit > 0 && len(txs) > limit {
			txs = txs[:limit]
		}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// SpendingSummary handles GET /api/transactions/summary with the signed
// per-category totals.
func (h *TransactionsHandler) SpendingSummary(w http.ResponseWriter, r *http.Request) {
	totals := h.sess.SpendingByCategory()

	out := make(map[string]string, len(totals))
	for category, total := range totals {
		out[category] = total.StringFixed(2)
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": out,
	})
}

// CardsHandler serves the card list.
type CardsHandler struct {
	store *cards.Store
	log   zerolog.Logger
}

// NewCardsHandler creates a new cards handler.
func NewCardsHandler(store *cards.Store, log zerolog.Logger) *CardsHandler {
	return &CardsHandler{store: store, log: log}
}

// cardView is a card plus its derived available limit.
type cardView struct {
	domain.Card
	Available decimal.Decimal `json:"available"`
}

// ListCards handles GET /api/cards
func (h *CardsHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	list := h.store.All()

	views := make([]cardView, 0, len(list))
	for _, c := range list {
		views = append(views, cardView{Card: c, Available: cards.Available(c)})
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cards": views,
		"count": len(views),
	})
}

// TransferHandler drives the instant-transfer workflow over HTTP.
type TransferHandler struct {
	workflow *transfer.Workflow
	sess     *session.Session
	contacts []domain.Contact
	log      zerolog.Logger
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(workflow *transfer.Workflow, sess *session.Session, contacts []domain.Contact, log zerolog.Logger) *TransferHandler {
	return &TransferHandler{workflow: workflow, sess: sess, contacts: contacts, log: log}
}

// ListContacts handles GET /api/transfers/contacts with the recent
// recipients offered when composing a transfer.
func (h *TransferHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": h.contacts,
		"count":    len(h.contacts),
	})
}

// SubmitTransfer handles POST /api/transfers. The call blocks for the
// settlement round trip and responds with the committed transaction and
// the new balance. Validation problems keep the flow open and return
// 422; a submission already in flight returns 409.
func (h *TransferHandler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payee  string `json:"payee"`
		Amount string `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	amount, err := transfer.ParseAmount(req.Amount)
	if err != nil {
		middleware.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if h.workflow.State() == transfer.StateIdle {
		if err := h.workflow.Begin(); err != nil {
			middleware.WriteError(w, http.StatusConflict, err.Error())
			return
		}
	}

	tx, err := h.workflow.Submit(r.Context(), req.Payee, amount)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	h.log.Info().Str("transaction_id", tx.ID).Msg("Transfer committed")

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": tx,
		"balance":     h.sess.Balance(),
	})
}

func (h *TransferHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var validationErr *transfer.ValidationError
	var settlementErr *transfer.SettlementError

	switch {
	case errors.As(err, &validationErr):
		middleware.WriteError(w, http.StatusUnprocessableEntity, validationErr.Error())
	case errors.Is(err, transfer.ErrSubmissionInFlight):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &settlementErr):
		h.log.Error().Err(err).Msg("Settlement failed")
		middleware.WriteError(w, http.StatusBadGateway, "Transfer could not be settled")
	default:
		middleware.WriteError(w, http.StatusConflict, err.Error())
	}
}

// GetState handles GET /api/transfers/state with the workflow position
// and the last surfaced error, for views that poll while a submission is
// in flight.
func (h *TransferHandler) GetState(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"state":   h.workflow.State(),
		"balance": h.sess.Balance(),
	}
	if err := h.workflow.Err(); err != nil {
		resp["error"] = err.Error()
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// AssistantHandler exposes the conversation manager.
type AssistantHandler struct {
	manager *assistant.Manager
	log     zerolog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(manager *assistant.Manager, log zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{manager: manager, log: log}
}

// ListMessages handles GET /api/assistant/messages
func (h *AssistantHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs := h.manager.Messages()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages": msgs,
		"count":    len(msgs),
		"pending":  h.manager.Pending(),
	})
}

// Ask handles POST /api/assistant/messages. The call blocks for the
// advice round trip; the response carries the full conversation
// including the new reply (or the fallback when the service failed).
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.manager.Ask(r.Context(), req.Text); err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyQuery):
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, assistant.ErrReplyPending):
			middleware.WriteError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error().Err(err).Msg("Assistant ask failed")
			middleware.WriteError(w, http.StatusInternalServerError, "Assistant unavailable")
		}
		return
	}

	msgs := h.manager.Messages()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages": msgs,
		"count":    len(msgs),
	})
}
