package main

import (
	"context"
	"log"
	"os"

	"github.com/vagueame/galaxyterm/internal/buildinfo"
	"github.com/vagueame/galaxyterm/internal/client/cli"
	"github.com/vagueame/galaxyterm/internal/client/config"
	"github.com/vagueame/galaxyterm/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewText(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
