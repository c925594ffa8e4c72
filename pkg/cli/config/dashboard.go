package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Dashboard holds the dashboard configuration sources
type Dashboard struct {
	ConfigPath    string
	Accounts      []string
	TrendingLabel string
}

// Flags returns CLI flags for Dashboard configuration
func (d *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the dashboard YAML configuration (accounts, overrides)",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("CASEBOARD_CONFIG"),
			Destination: &d.ConfigPath,
		},
		&cli.StringSliceFlag{
			Name:        "account",
			Usage:       "Configured account; replaces the accounts of the configuration file (repeatable)",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("CASEBOARD_ACCOUNTS"),
			Destination: &d.Accounts,
		},
		&cli.StringFlag{
			Name:        "trending-label",
			Usage:       "Card label marking trending cards",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("CASEBOARD_TRENDING_LABEL"),
			Destination: &d.TrendingLabel,
		},
	}
}

// Configure loads the configuration file, applies flag overrides and validates the result
func (d *Dashboard) Configure() (*model.DashboardConfig, error) {
	config := &model.DashboardConfig{}
	if d.ConfigPath != "" {
		loaded, err := readDashboardConfig(d.ConfigPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if len(d.Accounts) > 0 {
		config.Accounts = d.Accounts
	}
	if d.TrendingLabel != "" {
		config.TrendingLabel = d.TrendingLabel
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dashboard configuration",
			goerr.V("path", d.ConfigPath))
	}
	return config, nil
}

// LogValue returns structured log value
func (d Dashboard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", d.ConfigPath),
		slog.Any("accounts", d.Accounts),
		slog.String("trending_label", d.TrendingLabel),
	)
}

// LoadDashboardConfigFromFile loads and validates the dashboard configuration from a YAML file
func LoadDashboardConfigFromFile(path string) (*model.DashboardConfig, error) {
	config, err := readDashboardConfig(path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}
	return config, nil
}

func readDashboardConfig(path string) (*model.DashboardConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var config model.DashboardConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}
	return &config, nil
}
