package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aalves77/banco/internal/api/handlers"
	"github.com/aalves77/banco/internal/api/middleware"
	"github.com/aalves77/banco/internal/assistant"
	"github.com/aalves77/banco/internal/cards"
	"github.com/aalves77/banco/internal/config"
	"github.com/aalves77/banco/internal/logger"
	"github.com/aalves77/banco/internal/rail"
	"github.com/aalves77/banco/internal/seed"
	"github.com/aalves77/banco/internal/transfer"
)

func main() {
	// Initialize logger
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Seed the single local session; there is no persistence layer.
	sess := seed.Session()
	cardStore := cards.NewStore(seed.Cards()...)

	// Transfer workflow over the simulated payment rail
	simulator := rail.NewSimulator(cfg.SettleMinDelay, cfg.SettleMaxDelay, log)
	workflow := transfer.New(sess, simulator, log, transfer.Options{
		SettledHold: cfg.SettledHold,
	})

	// Assistant conversation over Gemini
	advisor := assistant.NewGeminiAdvisor(cfg.GeminiModel)
	manager := assistant.NewManager(advisor, sess, cfg.AdvisorTimeout, log)
	manager.Greet()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(sess, log)
	transactionsHandler := handlers.NewTransactionsHandler(sess, log)
	cardsHandler := handlers.NewCardsHandler(cardStore, log)
	transferHandler := handlers.NewTransferHandler(workflow, sess, seed.Contacts(), log)
	assistantHandler := handlers.NewAssistantHandler(manager, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			accountHandler.GetAccount(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.SpendingSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/cards", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			cardsHandler.ListCards(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transfers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transferHandler.SubmitTransfer(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transfers/contacts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transferHandler.ListContacts(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transfers/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transferHandler.GetState(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/assistant/messages", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assistantHandler.ListMessages(w, r)
		case http.MethodPost:
			assistantHandler.Ask(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.SettleMaxDelay + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown; leaves any in-flight settlement time to commit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
