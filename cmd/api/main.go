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

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/mindfulmate/backend/internal/config"
	"github.com/mindfulmate/backend/internal/handler"
	"github.com/mindfulmate/backend/internal/service/companion"
	"github.com/mindfulmate/backend/internal/service/session"
	"github.com/mindfulmate/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open store at %s: %v", cfg.Database.Path, err)
	}
	defer st.Close()

	var chatModel model.ChatModel
	if cfg.Companion.Enabled() {
		chatModel, err = cfg.Companion.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing with the heuristic companion only")
			chatModel = nil
		}
	} else {
		log.Println("companion model credentials not configured, using heuristic companion")
	}

	comp, err := companion.NewService(ctx, chatModel, companion.Config{
		HistoryLimit: cfg.Companion.HistoryLimit,
	})
	if err != nil {
		log.Fatalf("failed to initialize companion service: %v", err)
	}
	if comp.Enabled() {
		log.Println("LLM companion enabled")
	}

	sess := session.New(st, comp)
	log.Printf("conversation session %s ready", sess.ID())

	router := handler.NewRouter(st, sess)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MindfulMate backend listening on %s", serverCfg.Addr)
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
