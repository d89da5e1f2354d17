package main

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/spf13/pflag"

	"github.com/vancomm/gamepole/internal/config"
	"github.com/vancomm/gamepole/internal/logging"
	"github.com/vancomm/gamepole/internal/mines"
)

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	fs := pflag.NewFlagSet("mines", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "config file path")
	fs.Int("size", 10, "board size (size x size)")
	fs.Int("mines", 12, "number of mines")
	fs.Uint64("seed", 0, "random seed, 0 picks one")
	fs.String("log-level", "info", "log level")
	fs.Parse(os.Args[1:])

	loader := config.NewLoader()
	if err := loader.BindFlags(fs, map[string]string{
		"board.size":  "size",
		"board.mines": "mines",
		"board.seed":  "seed",
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

	// the REPL owns the terminal, so honour the level even in development
	log, err := logging.New(cfg.Log, false, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	mines.Log = log
	log.WithFields(cfg.Fields()).Debug("config")

	board, err := mines.NewBoard(cfg.Board.Size, cfg.Board.Mines, createRand(cfg.Board.Seed))
	if err != nil {
		log.WithError(err).Error("unable to create board")
		os.Exit(2)
	}
	if err := board.Init(); err != nil {
		log.WithError(err).Error("unable to initialize board")
		os.Exit(2)
	}

	outcome, err := newREPL(board, os.Stdin, os.Stdout, log).run()
	if err != nil {
		log.WithError(err).Error("unable to read input")
		os.Exit(1)
	}
	if outcome == mines.Lost {
		os.Exit(1)
	}
}
