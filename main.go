package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"roadside/cmd"
	"roadside/infra"

	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	config, err := infra.NewConfig()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	container, err := infra.NewContainerDI(ctx, config)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("building container")
	}
	defer container.Close()

	if err := cmd.StartAPI(ctx, container); err != nil {
		container.Logger.Error().Err(err).Msg("http server stopped")
		container.Close()
		os.Exit(1)
	}
}
