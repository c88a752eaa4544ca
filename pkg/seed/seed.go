package seed

import (
	"context"
	"errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type seedRepository interface {
	GetBreweryByName(ctx context.Context, name string) (*model.Brewery, error)
	AddBrewery(ctx context.Context, brewery model.Brewery) (*model.Brewery, error)
	GetBeerByName(ctx context.Context, name string, breweryID uint) (*model.Beer, error)
	AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error)
	AddBeerStyle(ctx context.Context, style string) (*model.BeerStyle, error)
	GetPubByName(ctx context.Context, name string) (*model.Pub, error)
	AddPub(ctx context.Context, pub model.Pub) (*model.Pub, error)
	AddTapEntry(ctx context.Context, entry model.TapEntry) (*model.TapEntry, error)
}

// Seeder imports catalog data through the same repository path the API uses.
// Every import is idempotent: rows are matched by name and skipped when they
// already exist, so reruns after a partial failure pick up where they left
// off.
type Seeder struct {
	repo   seedRepository
	logger *zap.Logger
}

func NewSeeder(repo seedRepository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// BrewerySeed is a brewery with its beers, the unit both the demo data and
// the scrape import produce.
type BrewerySeed struct {
	Brewery model.Brewery
	Beers   []BeerSeed
}

type BeerSeed struct {
	Beer  model.Beer
	Style string
}

type PubSeed struct {
	Pub  model.Pub
	Taps []TapSeed
}

// TapSeed references the beer by brewery and name so pubs can be seeded
// independently of database ids.
type TapSeed struct {
	BreweryName string
	BeerName    string
	TapNumber   int
	Prices      model.PriceList
}

func (s *Seeder) ImportBreweries(ctx context.Context, seeds []BrewerySeed) error {
	var errs error

	for _, seed := range seeds {
		if err := s.importBrewery(ctx, seed); err != nil {
			s.logger.Error("failed to import brewery", zap.String("name", seed.Brewery.Name), zap.Error(err))
			multierr.AppendInto(&errs, err)
		}
	}

	return errs
}

func (s *Seeder) importBrewery(ctx context.Context, seed BrewerySeed) error {
	brewery, err := s.repo.GetBreweryByName(ctx, seed.Brewery.Name)

	switch {
	case errors.Is(err, repository.ErrBreweryNotFound):
		brewery, err = s.repo.AddBrewery(ctx, seed.Brewery)
		if err != nil {
			return err
		}

		s.logger.Info("created brewery", zap.String("name", brewery.Name))
	case err != nil:
		return err
	}

	var errs error

	for _, beerSeed := range seed.Beers {
		multierr.AppendInto(&errs, s.importBeer(ctx, brewery.ID, beerSeed))
	}

	return errs
}

func (s *Seeder) importBeer(ctx context.Context, breweryID uint, seed BeerSeed) error {
	_, err := s.repo.GetBeerByName(ctx, seed.Beer.Name, breweryID)
	if err == nil {
		s.logger.Debug("beer already present", zap.String("name", seed.Beer.Name))

		return nil
	}

	if !errors.Is(err, repository.ErrBeerNotFound) {
		return err
	}

	beer := seed.Beer
	beer.BreweryID = breweryID

	if seed.Style != "" {
		style, err := s.repo.AddBeerStyle(ctx, seed.Style)
		if err != nil {
			return err
		}

		beer.StyleID = style.ID
	}

	if _, err := s.repo.AddBeer(ctx, beer); err != nil {
		return err
	}

	s.logger.Info("created beer", zap.String("name", beer.Name))

	return nil
}

// SeedsFromCatalog groups catalog lookup results by brewery so scraped beers
// flow through the same import path as the demo data.
func SeedsFromCatalog(beers []model.Beer) []BrewerySeed {
	index := make(map[string]int)

	var seeds []BrewerySeed

	for _, beer := range beers {
		name := beer.Brewery.Name
		if name == "" {
			continue
		}

		position, found := index[name]
		if !found {
			position = len(seeds)
			index[name] = position
			seeds = append(seeds, BrewerySeed{Brewery: beer.Brewery})
		}

		style := beer.Style.Name
		beer.Brewery = model.Brewery{}
		beer.Style = model.BeerStyle{}

		seeds[position].Beers = append(seeds[position].Beers, BeerSeed{Beer: beer, Style: style})
	}

	return seeds
}

func (s *Seeder) ImportPubs(ctx context.Context, seeds []PubSeed) error {
	var errs error

	for _, seed := range seeds {
		if err := s.importPub(ctx, seed); err != nil {
			s.logger.Error("failed to import pub", zap.String("name", seed.Pub.Name), zap.Error(err))
			multierr.AppendInto(&errs, err)
		}
	}

	return errs
}

func (s *Seeder) importPub(ctx context.Context, seed PubSeed) error {
	_, err := s.repo.GetPubByName(ctx, seed.Pub.Name)
	if err == nil {
		s.logger.Debug("pub already present", zap.String("name", seed.Pub.Name))

		return nil
	}

	if !errors.Is(err, repository.ErrPubNotFound) {
		return err
	}

	pub, err := s.repo.AddPub(ctx, seed.Pub)
	if err != nil {
		return err
	}

	s.logger.Info("created pub", zap.String("name", pub.Name))

	var errs error

	for _, tap := range seed.Taps {
		multierr.AppendInto(&errs, s.importTap(ctx, pub.ID, tap))
	}

	return errs
}

func (s *Seeder) importTap(ctx context.Context, pubID uint, seed TapSeed) error {
	brewery, err := s.repo.GetBreweryByName(ctx, seed.BreweryName)
	if err != nil {
		return err
	}

	beer, err := s.repo.GetBeerByName(ctx, seed.BeerName, brewery.ID)
	if err != nil {
		return err
	}

	_, err = s.repo.AddTapEntry(ctx, model.TapEntry{
		PubID:     pubID,
		BeerID:    beer.ID,
		TapNumber: seed.TapNumber,
		Prices:    seed.Prices,
		Active:    true,
		Visible:   true,
	})

	return err
}
