package untappdweb

import "go.uber.org/zap"

const IntegrationName = "untappd_web"

type UntappdWebIntegration struct {
	logger *zap.Logger
}

func NewUntappdWebIntegration(logger *zap.Logger) *UntappdWebIntegration {
	return &UntappdWebIntegration{logger: logger}
}
