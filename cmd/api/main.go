package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/xconsult/internal/config"
	"github.com/justsurfingit/xconsult/internal/handlers"
	"github.com/justsurfingit/xconsult/internal/models"
	"github.com/justsurfingit/xconsult/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. In-memory sessions; drafts never outlive the process
	sessions := services.NewSessionStore(cfg.SessionTTL)
	if err := sessions.StartSweeper(cfg.SessionSweep); err != nil {
		log.Fatal("Failed to start session sweeper: ", err)
	}
	defer sessions.Stop()

	// 3. Initialize Core Services (Dependencies)
	catalog := services.NewCatalogService(models.ServiceCategories)
	toasts := services.NewToastService(sessions, cfg.ToastTTL)
	drafts := services.NewDraftService(sessions, cfg.MaxAttachmentBytes)
	submissions := services.NewSubmissionService(sessions, toasts, services.SimulatedPoster{Delay: cfg.SubmitDelay})

	// 4. Setup Router
	router, err := handlers.NewRouter(handlers.Deps{
		Catalog:     catalog,
		Sessions:    sessions,
		Drafts:      drafts,
		Submissions: submissions,
		Toasts:      toasts,
		CORSOrigins: cfg.CORSOrigins,

		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.SubmitDelay,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second+cfg.SubmitDelay)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
}
