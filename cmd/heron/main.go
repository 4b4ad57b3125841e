// Heron is a UCI chess engine. It reads protocol commands on stdin and
// writes responses on stdout; diagnostics go to stderr so GUIs never see
// them. HERON_LOG selects the log level (debug, info, warn, ...).
package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"heron-engine/uci"
)

func main() {
	level := zerolog.InfoLevel
	if v := os.Getenv("HERON_LOG"); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()

	session := uci.NewSession(os.Stdin, os.Stdout, logger)
	if err := session.Run(); err != nil {
		logger.Fatal().Err(err).Msg("session terminated")
	}
}
