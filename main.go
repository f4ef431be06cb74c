package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/cmd"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/configs"
	"go.uber.org/zap"
)

func main() {
	env := configs.LoadEnv()

	logger, err := configs.NewLogger(env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.RunCli(ctx, env, logger, os.Args); err != nil {
		logger.Error("command failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
