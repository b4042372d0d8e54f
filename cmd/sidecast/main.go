package main

import (
	"context"
	goflag "flag"

	"github.com/sidecast/sidecast/pkg/config"
	"github.com/sidecast/sidecast/pkg/logger"
	"github.com/sidecast/sidecast/pkg/mirror"
	"github.com/sidecast/sidecast/pkg/os"
	flag "github.com/spf13/pflag"
)

var Version = "dev"

func main() {
	conf := config.NewConfig()
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	conf.ParseFlags()

	log := logger.NewConsole(conf.Sidecast.Debug, "m", false)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	// one capture pipeline per machine, a second instance would fight
	// over the same screen and ports
	lock, err := os.NewFileLock(conf.Sidecast.LockFile)
	if err != nil {
		log.Fatal().Err(err).Msg("lock file is not writable")
	}
	held, err := lock.TryLock()
	if err != nil {
		log.Fatal().Err(err).Msg("lock file is not usable")
	}
	if !held {
		log.Fatal().Msg("another instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	mirror.Version = Version
	app, err := mirror.New(*conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialization failed")
	}
	app.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err := app.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("service shutdown errors")
		}
	}()
	<-os.ExpectTermination()
	cancel()
}
