package untappdweb

import (
	"encoding/json"
	"strconv"

	"github.com/gocolly/colly/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/model"
)

type BreweryJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       struct {
		ContentURL string `json:"contentUrl"`
		URL        string `json:"url"`
	} `json:"image"`
	AggregateRating struct {
		RatingValue float64 `json:"ratingValue"`
		BestRating  string  `json:"bestRating"`
		ReviewCount int     `json:"reviewCount"`
	} `json:"aggregateRating"`
	Address struct {
		StreetAddress   string `json:"streetAddress"`
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
		AddressCountry  string `json:"addressCountry"`
	} `json:"address"`
}

func (u *UntappdWebIntegration) FindBrewery(name string) ([]model.Brewery, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains("untappd.com"),
	)

	var (
		errs    error
		results []model.Brewery
	)

	collector.OnHTML(".beer-item", func(element *colly.HTMLElement) {
		ratingString := element.ChildAttr(".rating > div.caps", "data-rating")
		rating, _ := strconv.ParseFloat(ratingString, 64)

		if rating > 0.0 {
			breweryURI := element.ChildAttr(".name > a", "href")

			brewery, err := u.getBreweryFromURI(breweryURI, collector)
			if multierr.AppendInto(&errs, err) {
				return
			}

			results = append(results, brewery)
		}
	})

	multierr.AppendInto(&errs, collector.Visit("https://untappd.com/search?q=/"+name+"&type=brewery"))

	return results, errs
}

func (u *UntappdWebIntegration) getBreweryFromURI(uri string, collector *colly.Collector) (model.Brewery, error) {
	var (
		errs    error
		brewery model.Brewery
	)

	collector.OnHTML("head script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var breweryJSON BreweryJSON
		_ = json.Unmarshal([]byte(element.Text), &breweryJSON)

		brewery = model.Brewery{
			Name:        breweryJSON.Name,
			Description: breweryJSON.Description,
			Locality:    breweryJSON.Address.AddressLocality,
			Region:      stringPointer(breweryJSON.Address.AddressRegion),
			Country:     breweryJSON.Address.AddressCountry,
			LogoURL:     breweryJSON.Image.ContentURL,
			Rating:      breweryJSON.AggregateRating.RatingValue,
		}
	})

	collector.OnHTML("head meta[property='og:url']", func(element *colly.HTMLElement) {
		if len(brewery.WebsiteURL) == 0 {
			brewery.WebsiteURL = element.Attr("content")
		}
	})

	multierr.AppendInto(&errs, collector.Visit("https://untappd.com/"+uri))

	if errs != nil {
		u.logger.Error("failed to scrape brewery page", zap.String("uri", uri), zap.Error(errs))
	}

	return brewery, errs
}

func stringPointer(value string) *string {
	if len(value) > 0 {
		return &value
	}

	return nil
}
