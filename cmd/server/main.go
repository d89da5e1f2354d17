package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/vancomm/gamepole/internal/app"
	"github.com/vancomm/gamepole/internal/config"
	"github.com/vancomm/gamepole/internal/logging"
	"github.com/vancomm/gamepole/internal/mines"
)

func main() {
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "config file path")
	fs.String("addr", ":8080", "listen address")
	fs.String("mode", "development", "development or production")
	fs.String("log-level", "info", "log level")
	fs.Parse(os.Args[1:])

	loader := config.NewLoader()
	if err := loader.BindFlags(fs, map[string]string{
		"server.addr": "addr",
		"mode":        "mode",
		"log.level":   "log-level",
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loader.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log, cfg.Development(), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	mines.Log = log

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	loader.Watch(log, func(c *config.Config) {
		level, err := logging.ParseLevel(c.Log.Level, c.Development())
		if err != nil {
			log.WithError(err).Warn("keeping previous log level")
			return
		}
		log.SetLevel(level)
	})

	a, err := app.New(log, cfg)
	if err != nil {
		log.WithError(err).Fatal("unable to set up server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}
