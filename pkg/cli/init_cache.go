package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/cli/config"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/service/fakedata"
	"github.com/secmon-lab/caseboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdInitCache() *cli.Command {
	var (
		cacheCfg       config.Cache
		sourceCfg      config.Source
		dashboardCfg   config.Dashboard
		fakeData       bool
		overwriteCache bool
		numberOfCases  int
		seed           int64
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "fake-data",
				Usage:       "Write synthetic data instead of fetching from the source",
				Sources:     cli.EnvVars("CASEBOARD_FAKE_DATA"),
				Destination: &fakeData,
			},
			&cli.BoolFlag{
				Name:        "overwrite-cache",
				Usage:       "Overwrite populated keys with synthetic data (otherwise only empty keys are written)",
				Sources:     cli.EnvVars("CASEBOARD_OVERWRITE_CACHE"),
				Destination: &overwriteCache,
			},
			&cli.IntFlag{
				Name:        "number-of-cases",
				Usage:       "Number of synthetic cases to create",
				Value:       10,
				Sources:     cli.EnvVars("CASEBOARD_NUMBER_OF_CASES"),
				Destination: &numberOfCases,
			},
			&cli.Int64Flag{
				Name:        "fake-seed",
				Usage:       "Seed of the synthetic data generator (0 is random)",
				Sources:     cli.EnvVars("CASEBOARD_FAKE_SEED"),
				Destination: &seed,
			},
		},
		cacheCfg.Flags(),
		sourceCfg.Flags(),
		dashboardCfg.Flags(),
	)

	return &cli.Command{
		Name:  "init-cache",
		Usage: "Populate empty cache keys from the source, or write synthetic data",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Initializing cache",
				slog.Bool("fake_data", fakeData),
				slog.Bool("overwrite_cache", overwriteCache),
				slog.Int("number_of_cases", numberOfCases),
				slog.Any("cache", cacheCfg),
				slog.Any("source", sourceCfg),
			)

			store, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var keys []types.CacheKey
			if fakeData {
				var accounts []string
				if dashboardCfg.ConfigPath != "" || len(dashboardCfg.Accounts) > 0 {
					dashboardConfig, err := dashboardCfg.Configure()
					if err != nil {
						return err
					}
					accounts = dashboardConfig.Accounts
				}

				generator := fakedata.New(accounts, fakedata.WithSeed(seed))
				keys, err = usecase.NewWarmer(store, nil, generator).Seed(ctx, numberOfCases, overwriteCache)
				if err != nil {
					return goerr.Wrap(err, "failed to write synthetic data")
				}
			} else {
				client, err := sourceCfg.Configure(store, logger)
				if err != nil {
					return err
				}
				keys, err = usecase.NewWarmer(store, client.Populators(), nil).Warm(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to warm cache")
				}
			}

			return writeJSON(c.Root().Writer, map[string]any{"written": keys})
		},
	}
}
