package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/cli/config"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

const (
	viewUpdates  = "updates"
	viewTrending = "trending"
	viewSummary  = "summary"
)

func cmdNewCases() *cli.Command {
	var (
		cacheCfg     config.Cache
		dashboardCfg config.Dashboard
	)

	return &cli.Command{
		Name:  "new-cases",
		Usage: "Print the cases created in the last 7 days as JSON",
		Flags: joinFlags(cacheCfg.Flags(), dashboardCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			dashboardUC, closer, err := setupDashboard(ctx, &cacheCfg, &dashboardCfg)
			if err != nil {
				return err
			}
			defer closer()

			cases, err := dashboardUC.NewCases(ctx)
			if err != nil {
				return err
			}
			if cases == nil {
				cases = []*model.Case{}
			}
			return writeJSON(c.Root().Writer, cases)
		},
	}
}

func cmdBoard() *cli.Command {
	var (
		cacheCfg      config.Cache
		dashboardCfg  config.Dashboard
		view          string
		allComments   bool
		filterAccount string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "view",
				Usage:       "Board to print (updates, trending, summary)",
				Value:       viewUpdates,
				Destination: &view,
			},
			&cli.BoolFlag{
				Name:        "all-comments",
				Usage:       "Keep every comment instead of the last 7 days (updates view)",
				Destination: &allComments,
			},
			&cli.StringFlag{
				Name:        "filter-account",
				Usage:       "Only show cards of this configured account (updates view)",
				Destination: &filterAccount,
			},
		},
		cacheCfg.Flags(),
		dashboardCfg.Flags(),
	)

	return &cli.Command{
		Name:  "board",
		Usage: "Print a card board grouped by account and status as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			switch view {
			case viewUpdates, viewTrending, viewSummary:
			default:
				return goerr.New("unknown view", goerr.V("view", view))
			}

			dashboardUC, closer, err := setupDashboard(ctx, &cacheCfg, &dashboardCfg)
			if err != nil {
				return err
			}
			defer closer()

			var result any
			switch view {
			case viewTrending:
				result, err = dashboardUC.TrendingCards(ctx)
			case viewSummary:
				result, err = dashboardUC.Summary(ctx)
			default:
				result, err = dashboardUC.NewComments(ctx, model.UpdatesQuery{
					AllComments: allComments,
					Account:     filterAccount,
				})
			}
			if err != nil {
				return err
			}
			return writeJSON(c.Root().Writer, result)
		},
	}
}

func setupDashboard(ctx context.Context, cacheCfg *config.Cache, dashboardCfg *config.Dashboard) (usecase.Dashboard, func(), error) {
	dashboardConfig, err := dashboardCfg.Configure()
	if err != nil {
		return nil, nil, err
	}

	store, err := cacheCfg.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		_ = store.Close()
	}
	return usecase.NewDashboard(store, dashboardConfig), closer, nil
}
