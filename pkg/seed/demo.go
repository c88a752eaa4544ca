package seed

import (
	"go.openly.dev/pointy"

	"fermenta.to/Fermenta/pkg/model"
)

// DemoBreweries is a small slice of the Italian craft scene, enough to make
// a fresh database browsable.
func DemoBreweries() []BrewerySeed {
	return []BrewerySeed{
		{
			Brewery: model.Brewery{
				Name:        "Birrificio Baladin",
				Locality:    "Piozzo",
				Region:      pointy.String("Piemonte"),
				Country:     "Italia",
				Description: "Pioniere della birra artigianale italiana, fondato da Teo Musso nel 1996.",
				WebsiteURL:  "https://www.baladin.it",
			},
			Beers: []BeerSeed{
				{Beer: model.Beer{Name: "Nazionale", ABV: pointy.Float64(6.5), Bottled: true}, Style: "Golden Ale"},
				{Beer: model.Beer{Name: "Isaac", ABV: pointy.Float64(5.0), Bottled: true}, Style: "Witbier"},
				{Beer: model.Beer{Name: "Super", ABV: pointy.Float64(8.0), Bottled: true}, Style: "Belgian Strong Ale"},
			},
		},
		{
			Brewery: model.Brewery{
				Name:        "Birrificio Italiano",
				Locality:    "Limido Comasco",
				Region:      pointy.String("Lombardia"),
				Country:     "Italia",
				Description: "Dal 1996 a Limido Comasco, casa della Tipopils.",
				WebsiteURL:  "https://www.birrificio.it",
			},
			Beers: []BeerSeed{
				{Beer: model.Beer{Name: "Tipopils", ABV: pointy.Float64(5.2), IBU: pointy.Uint64(38)}, Style: "Italian Pilsner"},
				{Beer: model.Beer{Name: "Amber Shock", ABV: pointy.Float64(7.0), Bottled: true}, Style: "Amber Lager"},
			},
		},
		{
			Brewery: model.Brewery{
				Name:        "Birra del Borgo",
				Locality:    "Borgorose",
				Region:      pointy.String("Lazio"),
				Country:     "Italia",
				Description: "Nata nel 2005 tra le montagne del reatino.",
				WebsiteURL:  "https://www.birradelborgo.it",
			},
			Beers: []BeerSeed{
				{Beer: model.Beer{Name: "ReAle", ABV: pointy.Float64(6.4), IBU: pointy.Uint64(60)}, Style: "American IPA"},
				{Beer: model.Beer{Name: "Duchessa", ABV: pointy.Float64(5.8), Bottled: true}, Style: "Saison"},
			},
		},
		{
			Brewery: model.Brewery{
				Name:        "Birrificio Lambrate",
				Locality:    "Milano",
				Region:      pointy.String("Lombardia"),
				Country:     "Italia",
				Description: "Il brewpub storico di Milano, attivo dal 1996.",
				WebsiteURL:  "https://www.birrificiolambrate.com",
			},
			Beers: []BeerSeed{
				{Beer: model.Beer{Name: "Ghisa", ABV: pointy.Float64(5.0), Color: "nera"}, Style: "Smoked Porter"},
				{Beer: model.Beer{Name: "Montestella", ABV: pointy.Float64(4.9)}, Style: "Kölsch"},
			},
		},
	}
}

// DemoPubs references DemoBreweries beers by name; import breweries first.
func DemoPubs() []PubSeed {
	weekHours := model.OpeningHours{
		"monday":    {Closed: true},
		"tuesday":   {Open: "18:00", Close: "01:00"},
		"wednesday": {Open: "18:00", Close: "01:00"},
		"thursday":  {Open: "18:00", Close: "01:00"},
		"friday":    {Open: "18:00", Close: "02:00"},
		"saturday":  {Open: "17:00", Close: "02:00"},
		"sunday":    {Open: "17:00", Close: "00:00"},
	}

	return []PubSeed{
		{
			Pub: model.Pub{
				Name:          "Luppolo e Malto",
				StreetAddress: "Via Garibaldi 12",
				City:          "Torino",
				Region:        "Piemonte",
				Description:   "Dodici spine dedicate ai birrifici piemontesi.",
				OpeningHours:  weekHours,
				Active:        true,
			},
			Taps: []TapSeed{
				{
					BreweryName: "Birrificio Baladin",
					BeerName:    "Nazionale",
					TapNumber:   1,
					Prices: model.PriceList{
						{Size: "0.2L", Price: 3.5},
						{Size: "0.4L", Price: 6},
					},
				},
				{
					BreweryName: "Birra del Borgo",
					BeerName:    "ReAle",
					TapNumber:   2,
					Prices: model.PriceList{
						{Size: "0.2L", Price: 4},
						{Size: "0.4L", Price: 6.5},
					},
				},
			},
		},
		{
			Pub: model.Pub{
				Name:          "La Spina Milanese",
				StreetAddress: "Via Adelchi 5",
				City:          "Milano",
				Region:        "Lombardia",
				Description:   "Taproom di quartiere a due passi da Lambrate.",
				OpeningHours:  weekHours,
				Active:        true,
			},
			Taps: []TapSeed{
				{
					BreweryName: "Birrificio Lambrate",
					BeerName:    "Ghisa",
					TapNumber:   1,
					Prices: model.PriceList{
						{Size: "0.2L", Price: 3},
						{Size: "0.4L", Price: 5.5},
					},
				},
				{
					BreweryName: "Birrificio Italiano",
					BeerName:    "Tipopils",
					TapNumber:   2,
					Prices: model.PriceList{
						{Size: "0.2L", Price: 3.5},
						{Size: "0.4L", Price: 6},
					},
				},
			},
		},
	}
}
