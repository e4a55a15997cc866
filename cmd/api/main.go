package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sehatlabs/healthchat/internal/config"
	"github.com/sehatlabs/healthchat/internal/handler"
	chatModel "github.com/sehatlabs/healthchat/internal/model/chat"
	"github.com/sehatlabs/healthchat/internal/service/ai"
	chatservice "github.com/sehatlabs/healthchat/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := chatModel.NewFileStore(cfg.Store.HistoryFile)

	var completer chatservice.Completer
	if cfg.Upstream.Enabled() {
		gateway, err := ai.NewGateway(cfg.Upstream)
		if err != nil {
			log.Printf("warning: failed to initialize model gateway: %v", err)
			log.Println("continuing without upstream - chat replies will carry the auth warning")
		} else {
			completer = gateway
			log.Println("model gateway initialized successfully")
		}
	} else {
		log.Println("OPENAI_API_KEY not set, chat replies will carry the auth warning")
	}

	chatSvc := chatservice.NewService(store, completer)
	router := handler.NewRouter(chatSvc, cfg.Upstream)

	logStartup(cfg)
	startServer(ctx, cfg.Server, router)
}

func logStartup(cfg *config.Config) {
	keyState := "NOT SET"
	if cfg.Upstream.Enabled() {
		keyState = cfg.Upstream.KeyPrefix() + "..."
	}

	log.Printf("site url: %s", cfg.Upstream.SiteURL)
	log.Printf("api key: %s", keyState)
	log.Printf("model: %s", cfg.Upstream.Model)
	log.Printf("chat history: %s", cfg.Store.HistoryFile)
	log.Printf("test endpoint: %s/api/test", cfg.Upstream.SiteURL)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Healthcare Assistant listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
