package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	WarmOnStart     bool
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("CASEBOARD_ADDR"),
			Destination: &s.Addr,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Time allowed for in-flight requests on shutdown",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("CASEBOARD_SHUTDOWN_TIMEOUT"),
			Destination: &s.ShutdownTimeout,
		},
		&cli.BoolFlag{
			Name:        "warm-on-start",
			Usage:       "Populate empty cache keys from the source in the background after start",
			Sources:     cli.EnvVars("CASEBOARD_WARM_ON_START"),
			Destination: &s.WarmOnStart,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Duration("shutdown_timeout", s.ShutdownTimeout),
		slog.Bool("warm_on_start", s.WarmOnStart),
	)
}
