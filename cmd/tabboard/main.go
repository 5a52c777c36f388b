package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"tabboard/internal/app"
	"tabboard/pkg/config"
	"tabboard/pkg/logger"
	"tabboard/pkg/shutdown"
)

// build metadata - set via ldflags during build/release
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	_ = godotenv.Load(".env")

	addrVal, fileVal, dbVal, cfgVal, setFlags := config.ParseCommandFlags()
	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])

	eff, err := config.LoadEffective(cfgPath, addrVal, fileVal, dbVal, setFlags)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithLevel(eff.Config.Logging.Level)

	a, err := app.New(eff, version, commit, buildDate)
	if err != nil {
		shutdown.Abort("startup failed", err, eff.DBPath, 0)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		shutdown.Abort("server exited", err, eff.DBPath, 0)
	}
	logger.Info("server_stopped")
}
