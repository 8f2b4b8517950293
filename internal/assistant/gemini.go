package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/aalves77/banco/internal/session"
)

// DefaultModelName is the Gemini model used for financial advice.
const DefaultModelName = "gemini-2.5-flash"

// GeminiAdvisor calls Gemini with the session snapshot as grounding
// context. The API key is taken from the environment by the genai client.
type GeminiAdvisor struct {
	model string
}

// NewGeminiAdvisor creates an advisor for the given model name; empty
// falls back to DefaultModelName.
func NewGeminiAdvisor(model string) *GeminiAdvisor {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiAdvisor{model: model}
}

// contextTransaction is the trimmed transaction shape serialized into
// the system instruction.
type contextTransaction struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
}

// Advise implements Advisor. It makes at most one outbound call; any
// transport or payload problem is returned as an error for the manager
// to absorb.
func (g *GeminiAdvisor) Advise(ctx context.Context, query string, snap session.Snapshot) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Advise: create genai client: %w", err)
	}

	instruction, err := buildSystemInstruction(snap)
	if err != nil {
		return "", fmt.Errorf("Advise: build instruction: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: query}},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: genai.Ptr[float32](0.7),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Advise: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Advise: empty response from model")
	}
	return text, nil
}

// buildSystemInstruction renders the advice prompt with the user's name,
// balances and recent transactions embedded as JSON.
func buildSystemInstruction(snap session.Snapshot) (string, error) {
	txs := make([]contextTransaction, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		txs = append(txs, contextTransaction{
			Title:    tx.Title,
			Amount:   tx.Amount.StringFixed(2),
			Date:     tx.Date.Format(time.DateOnly),
			Category: tx.Category,
			Kind:     string(tx.Kind),
		})
	}

	txJSON, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}

	instruction := "You are the personal financial assistant of a premium mobile-banking app.\n" +
		"Be professional, helpful and polite.\n" +
		"Analyze the user's transaction data and answer questions about spending, saving and investing.\n" +
		"Keep replies concise and useful for a mobile screen.\n\n" +
		fmt.Sprintf("User: %s.\n", snap.DisplayName) +
		fmt.Sprintf("Current balance: %s. Savings: %s.\n", snap.Balance.StringFixed(2), snap.Savings.StringFixed(2)) +
		fmt.Sprintf("Recent transactions: %s.", txJSON)

	return instruction, nil
}

var _ Advisor = (*GeminiAdvisor)(nil)
