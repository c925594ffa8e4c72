package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/service/source"
	"github.com/urfave/cli/v3"
)

// Source holds the location of the upstream snapshot export
type Source struct {
	URL        string
	MaxRetries int
	RetryWait  time.Duration
}

// Flags returns CLI flags for Source configuration
func (s *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source-url",
			Usage:       "Base URL serving <key>.json snapshots used to populate empty cache keys",
			Category:    "Source",
			Sources:     cli.EnvVars("CASEBOARD_SOURCE_URL"),
			Destination: &s.URL,
		},
		&cli.IntFlag{
			Name:        "source-max-retries",
			Usage:       "Maximum retries per snapshot download",
			Category:    "Source",
			Value:       3,
			Sources:     cli.EnvVars("CASEBOARD_SOURCE_MAX_RETRIES"),
			Destination: &s.MaxRetries,
		},
		&cli.DurationFlag{
			Name:        "source-retry-wait",
			Usage:       "Minimum wait between retries",
			Category:    "Source",
			Value:       time.Second,
			Sources:     cli.EnvVars("CASEBOARD_SOURCE_RETRY_WAIT"),
			Destination: &s.RetryWait,
		},
	}
}

// IsConfigured checks if a source URL is set
func (s *Source) IsConfigured() bool {
	return s.URL != ""
}

// Configure creates a source client writing to store
func (s *Source) Configure(store interfaces.CacheStore, logger *slog.Logger) (*source.Client, error) {
	if !s.IsConfigured() {
		return nil, goerr.New("source URL is required. Please provide CASEBOARD_SOURCE_URL")
	}
	if s.MaxRetries < 0 {
		return nil, goerr.New("source max retries must not be negative", goerr.V("max_retries", s.MaxRetries))
	}

	return source.New(s.URL, store,
		source.WithMaxRetries(s.MaxRetries),
		source.WithRetryWait(s.RetryWait, 10*s.RetryWait),
		source.WithLogger(logger.With("subsystem", "source")),
	)
}

// LogValue returns structured log value
func (s Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", s.URL),
		slog.Int("max_retries", s.MaxRetries),
		slog.Duration("retry_wait", s.RetryWait),
	)
}
