package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "guildkeeper/internal/command/management"
	_ "guildkeeper/internal/command/moderation"
	_ "guildkeeper/internal/command/server"
	_ "guildkeeper/internal/command/youtube"

	"guildkeeper/internal/command"
	"guildkeeper/internal/config"
	"guildkeeper/internal/discord"
	"guildkeeper/internal/gate"
	"guildkeeper/internal/logger"
	"guildkeeper/internal/modules"
	"guildkeeper/internal/storage"
	v "guildkeeper/internal/version"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "")
		log.Fatal().Err(err).Msg("configuration error")
	}
	logger.Init(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", v.AppVersion).Msgf("starting %s", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("storage error")
	}
	defer store.Close()

	// The catalog is built once, after all command packages have registered,
	// and injected into every consumer.
	catalog := modules.New(command.Modules())
	log.Info().Strs("modules", catalog.All()).Msg("capability modules discovered")

	bot := discord.New(cfg, store, catalog, gate.New(store, catalog))

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("bot error")
		}
		cancel()
	}

	log.Info().Msg("bot exited cleanly")
}
