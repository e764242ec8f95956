// cmd/assessment-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"salesfit-assessment/internal/common/config"
	commonhttp "salesfit-assessment/internal/common/http"
	"salesfit-assessment/internal/common/logger"
	"salesfit-assessment/internal/common/observability"
	"salesfit-assessment/internal/server"
	assessquestionnaire "salesfit-assessment/internal/workers/assessment/assess-questionnaire"
	submitassessment "salesfit-assessment/internal/workers/assessment/submit-assessment"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assessment server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	defer obs.Shutdown()

	ctx := context.Background()

	// --- LLM client ---
	genaiCfg := submitassessment.LoadConfig(cfg.APIs.GenAI)
	var generator submitassessment.Generator
	if genaiCfg.HasCredential() {
		gen, err := submitassessment.NewGenAIGenerator(ctx, genaiCfg, commonhttp.NewClient(genaiCfg.Timeout))
		if err != nil {
			zapLog.Fatal("failed to create GenAI client", zap.Error(err))
		}
		generator = gen
		zapLog.Info("Google API key found", zap.String("model", genaiCfg.Model))
	} else {
		zapLog.Warn("Google API key missing; assessments will be refused")
	}
	llmClient := submitassessment.NewClient(genaiCfg, generator, log)

	// --- Pipeline & HTTP API ---
	pipeline := assessquestionnaire.NewHandler(llmClient, obs, log)
	api := server.New(pipeline, llmClient, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HasAPIKey:      llmClient.Configured(),
	}, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.Strings("allowedOrigins", cfg.Server.AllowedOrigins),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Assessment server stopped gracefully")
}
