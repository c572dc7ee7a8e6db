package main

import (
	"fmt"
	"log/slog"
	"os"

	"bankbuddy/internal/cli"
	"bankbuddy/internal/config"
	"bankbuddy/internal/repository"
	"bankbuddy/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// Logs go to stderr so the menu on stdout stays readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := repository.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", "path", cfg.DBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Could not open ledger database %q: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer store.Close()

	accounts := service.NewAccountService(store, logger)
	transactions := service.NewTransactionService(store, logger)
	shell := cli.New(accounts, transactions, os.Stdin, os.Stdout, logger)

	if err := shell.Run(); err != nil {
		logger.Error("Session aborted", "error", err)
		fmt.Fprintf(os.Stderr, "Fatal storage error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}
