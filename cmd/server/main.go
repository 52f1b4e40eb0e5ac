package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"messageboard/internal/bootstrap"
	"messageboard/internal/config"
	"messageboard/internal/platform/logger"
	httptransport "messageboard/internal/transport/http"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a TOML config file (default $CONFIG_FILE or configs/config.toml)")
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	envErr := godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	logs := logger.New(os.Stderr, cfg.App.LogLevel)
	if envErr != nil {
		logs.Info("no dotenv file loaded, using process environment", "file", *envFile, "err", envErr)
	}

	ctx := context.Background()
	app := bootstrap.New(ctx, cfg, logs)
	defer func() {
		if err := app.Close(); err != nil {
			logs.Error("close resources failed", "err", err)
		}
	}()

	router := httptransport.NewRouter(app)
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logs.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(server, logs)
}

func waitForShutdown(server *http.Server, logs *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("server shutdown failed", "err", err)
	}
}
