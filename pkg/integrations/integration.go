package integrations

import (
	"go.uber.org/zap"

	untappdweb "fermenta.to/Fermenta/pkg/integrations/untappd-web"
	"fermenta.to/Fermenta/pkg/model"
)

// Integration looks up catalog data from an external beer database. Results
// are detached model values; persisting them is the caller's job.
type Integration interface {
	FindBeer(name string) ([]model.Beer, error)
	FindBrewery(name string) ([]model.Brewery, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == untappdweb.IntegrationName {
		return untappdweb.NewUntappdWebIntegration(logger)
	}

	return nil
}
