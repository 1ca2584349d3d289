package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wine-cellar/backend/config"
	"wine-cellar/backend/initialize"
	"wine-cellar/backend/server"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the yaml config file")
	envFile := flag.String("env", ".env", "Optional dotenv file loaded before the config")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load env file:", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log := initialize.NewLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initialize.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := server.Run(ctx, cfg.Addr(), app.Router, log); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}
