package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"medvoice/internal/advice"
	"medvoice/internal/ai"
	"medvoice/internal/config"
	"medvoice/internal/delivery"
	"medvoice/internal/session"
	"medvoice/internal/speech"
	"medvoice/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	if !cfg.Configured() {
		// non-fatal: the page still loads and reports the missing credential
		log.Printf("[config] OPENAI_API_KEY not set, gateway calls disabled")
	}

	// =========================================================================
	// CLIENTS (AI)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TranscribeModel)

	// =========================================================================
	// SERVICES
	// =========================================================================

	speechService := speech.NewService(openAIClient)
	adviceService := advice.NewService(openAIClient, cfg.AdviceModel, cfg.AdviceTemperature)

	store := session.NewStore(cfg.SessionTTL)
	sessionService := session.NewService(store, speechService, adviceService, cfg.Configured())

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(httprate.LimitByIP(60, time.Minute))

	// HANDLERS
	sessionHandler := delivery.NewSessionHandler(sessionService, zl, cfg.Configured())

	// ROUTES
	delivery.RegisterRoutes(r, sessionHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	r.Handle("/*", web.Handler())

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if n := store.Sweep(); n > 0 {
				log.Printf("[session-sweep] removed %d idle sessions", n)
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "medvoice",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
