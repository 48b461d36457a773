// Command ewnbot plays EinStein würfelt nicht! over the standard-I/O
// wire protocol described in the ewn package.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jeffu110616/GameTheoryEinstein/ewn"
)

// Grounded on Gongo's main.go: a small flag/positional-arg parse, a
// constructed robot, and a Run call against os.Stdin/os.Stdout.
func main() {
	configPath := flag.String("config", "", "path to an optional TOML config file overriding search parameters")
	variant := flag.String("variant", "default", "agent variant name, used in the log file name")
	flag.Parse()

	cfg := ewn.DefaultConfig()
	if *configPath != "" {
		loaded, err := ewn.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ewnbot: loading config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logPath := fmt.Sprintf("ewnbot-%s.log", *variant)
	if cfg.LogPath != "" {
		logPath = cfg.LogPath
	}
	logger, logFile, err := ewn.NewLogger(logPath, *variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ewnbot: opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rnd := ewn.NewRandomness(time.Now().UnixNano())
	search := ewn.NewSearch(cfg, rnd, logger)
	agent := ewn.NewAgent(search, os.Stdin, os.Stdout)

	// Board.MakeMove panics on an illegal move (§7: a search bug, not a
	// recoverable condition). Route that panic through the same
	// zerolog-then-exit path as an ordinary protocol error instead of
	// letting it print a bare Go stack trace to stderr.
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("agent terminated")
			os.Exit(1)
		}
	}()

	if err := agent.Run(); err != nil {
		logger.Error().Err(err).Msg("agent terminated")
		os.Exit(1)
	}
}
