// Package di wires the application together. The provider set lives here;
// wire_gen.go holds the generated injector.
package di

import (
	"context"
	"fmt"

	"jobtrack/application/ports"
	"jobtrack/application/services"
	appconfig "jobtrack/infrastructure/config"
	dynamorepo "jobtrack/infrastructure/persistence/dynamodb"
	"jobtrack/interfaces/http/rest"
	"jobtrack/interfaces/http/rest/handlers"
	"jobtrack/interfaces/http/rest/middleware"
	"jobtrack/pkg/auth"
	"jobtrack/pkg/cache"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger builds the process logger for the configured environment.
func ProvideLogger(cfg *appconfig.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig loads the default AWS configuration.
func ProvideAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient builds the DynamoDB client, pointing it at a local
// endpoint when one is configured.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *appconfig.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideUserRepository builds the user repository.
func ProvideUserRepository(client *dynamodb.Client, cfg *appconfig.Config, logger *zap.Logger) ports.UserRepository {
	return dynamorepo.NewUserRepository(client, cfg.AppTable, logger)
}

// ProvideCampaignRepository builds the campaign repository.
func ProvideCampaignRepository(client *dynamodb.Client, cfg *appconfig.Config, logger *zap.Logger) ports.CampaignRepository {
	return dynamorepo.NewCampaignRepository(client, cfg.AppTable, logger)
}

// ProvideApplicationRepository builds the application repository.
func ProvideApplicationRepository(client *dynamodb.Client, cfg *appconfig.Config, logger *zap.Logger) ports.ApplicationRepository {
	return dynamorepo.NewApplicationRepository(client, cfg.AppTable, cfg.InverseIndexName, logger)
}

// ProvideDefaultCampaignCache builds the in-process default-campaign cache.
func ProvideDefaultCampaignCache() ports.DefaultCampaignCache {
	return cache.NewDefaultCampaigns()
}

// ProvideTokenService builds the session token service.
func ProvideTokenService(cfg *appconfig.Config) *auth.TokenService {
	return auth.NewTokenService(cfg.JWTSecret)
}

// ProvideUsersService builds the users service.
func ProvideUsersService(repo ports.UserRepository, logger *zap.Logger) *services.UsersService {
	return services.NewUsersService(repo, logger)
}

// ProvideCampaignsService builds the campaigns service.
func ProvideCampaignsService(repo ports.CampaignRepository, defaultCampaigns ports.DefaultCampaignCache, logger *zap.Logger) *services.CampaignsService {
	return services.NewCampaignsService(repo, defaultCampaigns, logger)
}

// ProvideApplicationsService builds the applications service.
func ProvideApplicationsService(repo ports.ApplicationRepository, logger *zap.Logger) *services.ApplicationsService {
	return services.NewApplicationsService(repo, logger)
}

// ProvideAuthHandler builds the auth handler.
func ProvideAuthHandler(users *services.UsersService, tokens *auth.TokenService, cfg *appconfig.Config, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(users, tokens, cfg.CookieDomain, logger)
}

// ProvideCampaignHandler builds the campaign handler.
func ProvideCampaignHandler(campaigns *services.CampaignsService, logger *zap.Logger) *handlers.CampaignHandler {
	return handlers.NewCampaignHandler(campaigns, logger)
}

// ProvideApplicationHandler builds the application handler.
func ProvideApplicationHandler(applications *services.ApplicationsService, logger *zap.Logger) *handlers.ApplicationHandler {
	return handlers.NewApplicationHandler(applications, logger)
}

// ProvideTaskHandler builds the task handler.
func ProvideTaskHandler(applications *services.ApplicationsService, logger *zap.Logger) *handlers.TaskHandler {
	return handlers.NewTaskHandler(applications, logger)
}

// ProvideAuthenticator builds the auth middleware.
func ProvideAuthenticator(tokens *auth.TokenService) *middleware.Authenticator {
	return middleware.NewAuthenticator(tokens)
}

// ProvideRouter builds the HTTP router.
func ProvideRouter(
	authHandler *handlers.AuthHandler,
	campaignHandler *handlers.CampaignHandler,
	applicationHandler *handlers.ApplicationHandler,
	taskHandler *handlers.TaskHandler,
	authenticator *middleware.Authenticator,
	cfg *appconfig.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(authHandler, campaignHandler, applicationHandler, taskHandler, authenticator, logger, cfg.EnableCORS)
}

// Container holds the assembled application.
type Container struct {
	Config *appconfig.Config
	Logger *zap.Logger
	Router *rest.Router
}

// ProvideContainer bundles the top-level pieces.
func ProvideContainer(cfg *appconfig.Config, logger *zap.Logger, router *rest.Router) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		Router: router,
	}
}
