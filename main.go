package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eventadmin/internal/cli"
	"eventadmin/internal/config"
	"eventadmin/internal/logging"
)

func main() {
	loadedEnv := []string{}
	if os.Getenv("DISABLE_DOTENV") == "" {
		loadedEnv = config.LoadDotEnv()
	}
	logging.Init(logging.Options{})
	if len(loadedEnv) > 0 {
		for _, p := range loadedEnv {
			slog.Debug("loaded env file", "path", p)
		}
	} else if os.Getenv("DISABLE_DOTENV") != "" {
		slog.Debug("dotenv loading disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{})
	stop()
	os.Exit(code)
}
