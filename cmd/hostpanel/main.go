package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hostwire/hostpanel/internal/app"
	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/logging"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, errLoad := config.Load(*configPath)
	if errLoad != nil {
		log.Fatalf("load config: %v", errLoad)
	}

	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if errRun := app.Run(ctx, cfg); errRun != nil {
		log.Fatalf("server: %v", errRun)
	}
}
