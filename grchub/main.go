package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"grchub/grchub/config"
	"grchub/grchub/controllers"
	"grchub/grchub/knowledge"
	"grchub/grchub/routes"
	"grchub/grchub/services/llm"
	"grchub/grchub/utils/logging"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)

	store, err := knowledge.Load(cfg.KnowledgePath)
	if err != nil {
		logging.ErrorLogger.Error("knowledge base load error", zap.Error(err))
		os.Exit(1)
	}
	logging.AppLogger.Info("knowledge base loaded", zap.Int("entries", store.Len()))

	llmClient := llm.NewOpenAIClient(cfg)
	chatCtrl := controllers.NewChatController(store, llmClient)
	knowledgeCtrl := controllers.NewKnowledgeController(store)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/api/knowledge", routes.KnowledgeRoutes(knowledgeCtrl))
	r.Mount("/api/chat", routes.ChatRoutes(chatCtrl, cfg.ChatTimeout))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
