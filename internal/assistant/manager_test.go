package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalves77/banco/internal/assistant"
	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/logger"
	"github.com/aalves77/banco/internal/session"
)

// stubAdvisor replies with a fixed text or error and records the
// snapshot it was given.
type stubAdvisor struct {
	reply    string
	err      error
	lastSnap session.Snapshot
	calls    int
}

func (a *stubAdvisor) Advise(ctx context.Context, query string, snap session.Snapshot) (string, error) {
	a.calls++
	a.lastSnap = snap
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

// blockingAdvisor holds the reply until released so tests can observe
// the pending flag.
type blockingAdvisor struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingAdvisor() *blockingAdvisor {
	return &blockingAdvisor{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (a *blockingAdvisor) Advise(ctx context.Context, query string, snap session.Snapshot) (string, error) {
	a.started <- struct{}{}
	<-a.release
	return "here is some advice", nil
}

func testSession() *session.Session {
	return session.New(domain.Account{
		DisplayName: "Alexandre Silva",
		Balance:     decimal.NewFromFloat(12450.60),
	}, domain.Transaction{
		ID: "1", Title: "Netflix", Amount: decimal.NewFromFloat(55.90),
		Category: "Entertainment", Kind: domain.KindExpense,
	})
}

func TestManager_AskAppendsUserThenAssistant(t *testing.T) {
	advisor := &stubAdvisor{reply: "You spent 55.90 on entertainment."}
	m := assistant.NewManager(advisor, testSession(), 0, logger.Nop())

	require.NoError(t, m.Ask(context.Background(), "how much did I spend?"))

	msgs := m.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, assistant.RoleUser, msgs[0].Role)
	assert.Equal(t, "how much did I spend?", msgs[0].Content)
	assert.Equal(t, assistant.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "You spent 55.90 on entertainment.", msgs[1].Content)
	assert.False(t, m.Pending())
	assert.Equal(t, 1, advisor.calls)
}

func TestManager_AskRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace", text: "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advisor := &stubAdvisor{reply: "hi"}
			m := assistant.NewManager(advisor, testSession(), 0, logger.Nop())

			err := m.Ask(context.Background(), tt.text)

			assert.ErrorIs(t, err, assistant.ErrEmptyQuery)
			assert.Empty(t, m.Messages(), "no message appended")
			assert.False(t, m.Pending(), "pending never set")
			assert.Zero(t, advisor.calls, "service not called")
		})
	}
}

func TestManager_ServiceFailureYieldsFallback(t *testing.T) {
	tests := []struct {
		name    string
		advisor *stubAdvisor
	}{
		{name: "transport error", advisor: &stubAdvisor{err: errors.New("connection refused")}},
		{name: "empty reply", advisor: &stubAdvisor{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := assistant.NewManager(tt.advisor, testSession(), 0, logger.Nop())

			require.NoError(t, m.Ask(context.Background(), "any advice?"), "service failure must not surface to the caller")

			msgs := m.Messages()
			require.Len(t, msgs, 2, "exactly one assistant message even on failure")
			assert.Equal(t, assistant.RoleAssistant, msgs[1].Role)
			assert.Equal(t, assistant.DefaultFallback, msgs[1].Content)
			assert.False(t, m.Pending(), "pending cleared after failure")
		})
	}
}

func TestManager_SequentialAsksAlternateRoles(t *testing.T) {
	advisor := &stubAdvisor{reply: "ok"}
	m := assistant.NewManager(advisor, testSession(), 0, logger.Nop())

	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, m.Ask(context.Background(), fmt.Sprintf("question %d", i)))
	}

	msgs := m.Messages()
	require.Len(t, msgs, 2*n)
	for i, msg := range msgs {
		want := assistant.RoleUser
		if i%2 == 1 {
			want = assistant.RoleAssistant
		}
		assert.Equalf(t, want, msg.Role, "message %d", i)
	}
}

func TestManager_RejectsAskWhileReplyPending(t *testing.T) {
	advisor := newBlockingAdvisor()
	m := assistant.NewManager(advisor, testSession(), 0, logger.Nop())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- m.Ask(context.Background(), "first question")
	}()

	select {
	case <-advisor.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first ask never reached the advisor")
	}
	assert.True(t, m.Pending())

	err := m.Ask(context.Background(), "second question")
	assert.ErrorIs(t, err, assistant.ErrReplyPending)
	assert.Len(t, m.Messages(), 1, "rejected ask appends nothing")

	close(advisor.release)
	require.NoError(t, <-firstDone)

	msgs := m.Messages()
	require.Len(t, msgs, 2)
	assert.False(t, m.Pending())
}

func TestManager_SnapshotCarriesSessionContext(t *testing.T) {
	advisor := &stubAdvisor{reply: "ok"}
	m := assistant.NewManager(advisor, testSession(), 0, logger.Nop())

	require.NoError(t, m.Ask(context.Background(), "who am I?"))

	assert.Equal(t, "Alexandre Silva", advisor.lastSnap.DisplayName)
	assert.Equal(t, "12450.60", advisor.lastSnap.Balance.StringFixed(2))
	require.Len(t, advisor.lastSnap.Transactions, 1)
	assert.Equal(t, "Netflix", advisor.lastSnap.Transactions[0].Title)
}

func TestManager_GreetOpensConversation(t *testing.T) {
	m := assistant.NewManager(&stubAdvisor{reply: "ok"}, testSession(), 0, logger.Nop())

	m.Greet()

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.RoleAssistant, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Alexandre Silva")
}
