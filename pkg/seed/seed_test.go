package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type fakeSeedRepo struct {
	breweries  []*model.Brewery
	beers      []*model.Beer
	styles     []*model.BeerStyle
	pubs       []*model.Pub
	tapEntries []*model.TapEntry
	nextID     uint
}

func (f *fakeSeedRepo) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeSeedRepo) GetBreweryByName(_ context.Context, name string) (*model.Brewery, error) {
	for _, brewery := range f.breweries {
		if brewery.Name == name {
			return brewery, nil
		}
	}

	return nil, repository.ErrBreweryNotFound
}

func (f *fakeSeedRepo) AddBrewery(_ context.Context, brewery model.Brewery) (*model.Brewery, error) {
	brewery.ID = f.id()
	f.breweries = append(f.breweries, &brewery)

	return &brewery, nil
}

func (f *fakeSeedRepo) GetBeerByName(_ context.Context, name string, breweryID uint) (*model.Beer, error) {
	for _, beer := range f.beers {
		if beer.Name == name && beer.BreweryID == breweryID {
			return beer, nil
		}
	}

	return nil, repository.ErrBeerNotFound
}

func (f *fakeSeedRepo) AddBeer(_ context.Context, beer model.Beer) (*model.Beer, error) {
	beer.ID = f.id()
	f.beers = append(f.beers, &beer)

	return &beer, nil
}

func (f *fakeSeedRepo) AddBeerStyle(_ context.Context, name string) (*model.BeerStyle, error) {
	for _, style := range f.styles {
		if style.Name == name {
			return style, nil
		}
	}

	style := &model.BeerStyle{Name: name}
	style.ID = f.id()
	f.styles = append(f.styles, style)

	return style, nil
}

func (f *fakeSeedRepo) GetPubByName(_ context.Context, name string) (*model.Pub, error) {
	for _, pub := range f.pubs {
		if pub.Name == name {
			return pub, nil
		}
	}

	return nil, repository.ErrPubNotFound
}

func (f *fakeSeedRepo) AddPub(_ context.Context, pub model.Pub) (*model.Pub, error) {
	pub.ID = f.id()
	f.pubs = append(f.pubs, &pub)

	return &pub, nil
}

func (f *fakeSeedRepo) AddTapEntry(_ context.Context, entry model.TapEntry) (*model.TapEntry, error) {
	entry.ID = f.id()
	f.tapEntries = append(f.tapEntries, &entry)

	return &entry, nil
}

func TestImportDemoDataTwiceMatchesOnce(t *testing.T) {
	repo := &fakeSeedRepo{}
	seeder := NewSeeder(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, seeder.ImportBreweries(ctx, DemoBreweries()))
	require.NoError(t, seeder.ImportPubs(ctx, DemoPubs()))

	breweries := len(repo.breweries)
	beers := len(repo.beers)
	pubs := len(repo.pubs)
	taps := len(repo.tapEntries)

	require.NoError(t, seeder.ImportBreweries(ctx, DemoBreweries()))
	require.NoError(t, seeder.ImportPubs(ctx, DemoPubs()))

	assert.Equal(t, breweries, len(repo.breweries))
	assert.Equal(t, beers, len(repo.beers))
	assert.Equal(t, pubs, len(repo.pubs))
	assert.Equal(t, taps, len(repo.tapEntries))
}

func TestImportBeerReusesStyle(t *testing.T) {
	repo := &fakeSeedRepo{}
	seeder := NewSeeder(repo, zaptest.NewLogger(t))

	seeds := []BrewerySeed{
		{
			Brewery: model.Brewery{Name: "Crak"},
			Beers: []BeerSeed{
				{Beer: model.Beer{Name: "Mundaka"}, Style: "Session IPA"},
				{Beer: model.Beer{Name: "Guerrilla"}, Style: "Session IPA"},
			},
		},
	}

	require.NoError(t, seeder.ImportBreweries(context.Background(), seeds))

	assert.Len(t, repo.styles, 1)
	assert.Len(t, repo.beers, 2)
	assert.Equal(t, repo.beers[0].StyleID, repo.beers[1].StyleID)
}

func TestSeedsFromCatalogGroupsByBrewery(t *testing.T) {
	beers := []model.Beer{
		{Name: "Spaceman", Brewery: model.Brewery{Name: "Brewfist"}, Style: model.BeerStyle{Name: "IPA"}},
		{Name: "Caterpillar", Brewery: model.Brewery{Name: "Brewfist"}, Style: model.BeerStyle{Name: "Pale Ale"}},
		{Name: "Tipopils", Brewery: model.Brewery{Name: "Birrificio Italiano"}},
		{Name: "Nameless"},
	}

	seeds := SeedsFromCatalog(beers)

	require.Len(t, seeds, 2)
	assert.Equal(t, "Brewfist", seeds[0].Brewery.Name)
	assert.Len(t, seeds[0].Beers, 2)
	assert.Equal(t, "IPA", seeds[0].Beers[0].Style)
	assert.Equal(t, "Birrificio Italiano", seeds[1].Brewery.Name)
}
