package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/aalves77/banco/internal/assistant"
	"github.com/aalves77/banco/internal/config"
	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/logger"
	"github.com/aalves77/banco/internal/rail"
	"github.com/aalves77/banco/internal/seed"
	"github.com/aalves77/banco/internal/transfer"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "statement":
		runStatement()
	case "summary":
		runSummary()
	case "contacts":
		runContacts()
	case "transfer":
		runTransfer(log)
	case "ask":
		runAsk(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Banco CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  statement  Print the transaction ledger (optionally filtered)")
	fmt.Println("  summary    Print signed spending totals per category")
	fmt.Println("  contacts   Print the recent transfer recipients")
	fmt.Println("  transfer   Submit an instant transfer against the demo session")
	fmt.Println("  ask        Ask the financial assistant a question")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runStatement() {
	fs := flag.NewFlagSet("statement", flag.ExitOnError)
	query := fs.String("q", "", "Filter by substring over title/category")
	limit := fs.Int("n", 0, "Show only the N most recent entries")
	fs.Parse(os.Args[2:])

	sess := seed.Session()

	var txs []domain.Transaction
	if *limit > 0 && *query == "" {
		txs = sess.RecentTransactions(*limit)
	} else {
		txs = sess.FilterTransactions(*query)
		if *limit > 0 && len(txs) > *limit {
			txs = txs[:*limit]
		}
	}
	fmt.Printf("Balance: %s  Savings: %s\n\n", sess.Balance().StringFixed(2), sess.Savings().StringFixed(2))
	for _, tx := range txs {
		fmt.Printf("%s  %-28s %-14s %10s\n",
			tx.Date.Format(time.DateOnly), tx.Title, tx.Category, tx.SignedAmount().StringFixed(2))
	}
	if len(txs) == 0 {
		fmt.Println("No transactions matched.")
	}
}

func runContacts() {
	for _, c := range seed.Contacts() {
		fmt.Printf("%-20s %s\n", c.Name, c.Key)
	}
}

func runSummary() {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	sess := seed.Session()

	for category, total := range sess.SpendingByCategory() {
		fmt.Printf("%-16s %10s\n", category, total.StringFixed(2))
	}
}

func runTransfer(log zerolog.Logger) {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	payee := fs.String("payee", "", "Payee key (email, phone, tax id or random key)")
	rawAmount := fs.String("amount", "", "Amount to transfer")
	fs.Parse(os.Args[2:])

	if *rawAmount == "" {
		log.Fatal().Msg("Error: --amount is required")
	}

	amount, err := transfer.ParseAmount(*rawAmount)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid amount")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sess := seed.Session()
	workflow := transfer.New(sess, rail.NewSimulator(cfg.SettleMinDelay, cfg.SettleMaxDelay, log), log, transfer.Options{})

	if err := workflow.Begin(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start transfer")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Info().Str("payee", *payee).Str("amount", amount.StringFixed(2)).Msg("Submitting transfer")

	tx, err := workflow.Submit(ctx, *payee, amount)
	if err != nil {
		log.Fatal().Err(err).Msg("Transfer failed")
	}

	fmt.Printf("Settled: %s (%s)\n", tx.Title, tx.Amount.StringFixed(2))
	fmt.Printf("New balance: %s\n", sess.Balance().StringFixed(2))
}

func runAsk(log zerolog.Logger) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	query := fs.String("q", "", "Question for the assistant")
	fs.Parse(os.Args[2:])

	if *query == "" {
		log.Fatal().Msg("Error: --q is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sess := seed.Session()
	manager := assistant.NewManager(assistant.NewGeminiAdvisor(cfg.GeminiModel), sess, cfg.AdvisorTimeout, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AdvisorTimeout+5*time.Second)
	defer cancel()

	if err := manager.Ask(ctx, *query); err != nil {
		log.Fatal().Err(err).Msg("Ask rejected")
	}

	msgs := manager.Messages()
	fmt.Println(msgs[len(msgs)-1].Content)
}
