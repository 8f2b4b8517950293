// Package assistant maintains the ordered conversation with the
// financial assistant and brokers each query to the external advice
// service. Failures of the service never reach the message list raw:
// the conversation always resolves to a displayable reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aalves77/banco/internal/session"
)

// Role identifies who sent a conversation message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a reply from the assistant.
	RoleAssistant Role = "assistant"
)

// Message is one entry in the append-only conversation.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Advisor is the external advice-service boundary. Any error return is
// absorbed by the manager into the fallback reply; an empty reply text
// counts as a failure too.
type Advisor interface {
	Advise(ctx context.Context, query string, snap session.Snapshot) (string, error)
}

// SnapshotSource supplies the read-only session context sent with each
// query. Satisfied by *session.Session.
type SnapshotSource interface {
	AdviceSnapshot() session.Snapshot
}

// DefaultFallback is the user-safe reply appended when the advice
// service fails in any way.
const DefaultFallback = "Sorry, I couldn't reach my knowledge base right now. Please try again in a moment."

// Rejection sentinels for Ask. Neither appends a message.
var (
	// ErrEmptyQuery rejects empty or whitespace-only input.
	ErrEmptyQuery = errors.New("assistant: empty query")
	// ErrReplyPending rejects a query while a previous reply is pending.
	ErrReplyPending = errors.New("assistant: reply already pending")
)

// Manager holds the conversation state for one session. Safe for
// concurrent use; concurrent asks are rejected rather than queued.
type Manager struct {
	advisor Advisor
	source  SnapshotSource
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewManager creates an empty conversation. timeout bounds each advice
// call; zero means the caller's context alone applies.
func NewManager(advisor Advisor, source SnapshotSource, timeout time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		advisor: advisor,
		source:  source,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// Greet appends the opening assistant message. Called once at session
// start, before any Ask.
func (m *Manager) Greet() {
	name := m.source.AdviceSnapshot().DisplayName
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: fmt.Sprintf("Hello %s! I'm your financial assistant. How can I help with your finances today?", name),
		SentAt:  m.now(),
	})
}

// Ask sends one user query to the advice service. The user message is
// appended synchronously, before the reply arrives; the assistant reply
// (or the fixed fallback, on any service failure) follows in the same
// call, so the sequence alternates strictly User, Assistant. Empty input
// and asks made while a reply is pending are rejected without touching
// the conversation.
func (m *Manager) Ask(ctx context.Context, text string) error {
	query := strings.TrimSpace(text)
	if query == "" {
		return ErrEmptyQuery
	}

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return ErrReplyPending
	}
	m.pending = true
	m.messages = append(m.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: query,
		SentAt:  m.now(),
	})
	m.mu.Unlock()

	// Point-in-time snapshot; building it never mutates the session.
	snap := m.source.AdviceSnapshot()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	reply, err := m.advisor.Advise(ctx, query, snap)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			m.log.Warn().Err(err).Msg("Advice service failed, using fallback reply")
		} else {
			m.log.Warn().Msg("Advice service returned empty reply, using fallback")
		}
		reply = DefaultFallback
	}

	m.mu.Lock()
	m.messages = append(m.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: reply,
		SentAt:  m.now(),
	})
	m.pending = false
	m.mu.Unlock()

	return nil
}

// Messages returns a snapshot copy of the conversation in send order.
func (m *Manager) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Pending reports whether a reply is currently awaited.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}
