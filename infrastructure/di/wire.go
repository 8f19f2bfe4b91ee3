//go:build wireinject
// +build wireinject

package di

import (
	"context"

	appconfig "jobtrack/infrastructure/config"

	"github.com/google/wire"
)

// InitializeContainer assembles the full application graph.
func InitializeContainer(ctx context.Context, cfg *appconfig.Config) (*Container, error) {
	wire.Build(
		ProvideLogger,
		ProvideAWSConfig,
		ProvideDynamoDBClient,
		ProvideUserRepository,
		ProvideCampaignRepository,
		ProvideApplicationRepository,
		ProvideDefaultCampaignCache,
		ProvideTokenService,
		ProvideUsersService,
		ProvideCampaignsService,
		ProvideApplicationsService,
		ProvideAuthHandler,
		ProvideCampaignHandler,
		ProvideApplicationHandler,
		ProvideTaskHandler,
		ProvideAuthenticator,
		ProvideRouter,
		ProvideContainer,
	)
	return nil, nil
}
