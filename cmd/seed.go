package cmd

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/integrations"
	"fermenta.to/Fermenta/pkg/repository"
	"fermenta.to/Fermenta/pkg/seed"
)

type SeedCmd struct {
	Demo   DemoSeedCmd   `cmd:"" help:"Load the demo catalog"`
	Scrape ScrapeSeedCmd `cmd:"" help:"Import beers from the configured catalog integrations"`
}

type DemoSeedCmd struct {
	ConfigFile string `default:".Fermenta.toml" help:"Path to config file" short:"c"`
}

func (d *DemoSeedCmd) Run(_ *Context) error {
	seeder, repo, logger, err := openSeeder(d.ConfigFile)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()

	if err := seeder.ImportBreweries(ctx, seed.DemoBreweries()); err != nil {
		return err
	}

	if err := seeder.ImportPubs(ctx, seed.DemoPubs()); err != nil {
		return err
	}

	logger.Info("demo catalog imported")

	return nil
}

type ScrapeSeedCmd struct {
	ConfigFile string `default:".Fermenta.toml" help:"Path to config file" short:"c"`
	Query      string `arg:""                   help:"Beer name to search for"`
}

func (s *ScrapeSeedCmd) Run(_ *Context) error {
	seeder, repo, logger, err := openSeeder(s.ConfigFile)
	if err != nil {
		return err
	}
	defer repo.Close()

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		return err
	}

	imported := false

	for _, name := range conf.Integrations.Beer {
		integration := integrations.GetIntegration(name, logger)
		if integration == nil {
			logger.Warn("unknown integration", zap.String("name", name))

			continue
		}

		beers, err := integration.FindBeer(s.Query)
		if err != nil {
			logger.Error("catalog lookup failed", zap.String("integration", name), zap.Error(err))

			continue
		}

		if err := seeder.ImportBreweries(context.Background(), seed.SeedsFromCatalog(beers)); err != nil {
			return err
		}

		imported = true
	}

	if !imported {
		return errors.New("no integration produced results")
	}

	return nil
}

func openSeeder(configFile string) (*seed.Seeder, *repository.Repository, *zap.Logger, error) {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()

	conf, err := configs.GetConfig(configFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return nil, nil, nil, err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return nil, nil, nil, err
	}

	return seed.NewSeeder(repo, logger), repo, logger, nil
}
