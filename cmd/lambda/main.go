package main

import (
	"context"
	"log"

	appconfig "jobtrack/infrastructure/config"
	"jobtrack/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
)

var adapter *chiadapter.ChiLambdaV2

func init() {
	cfg, err := appconfig.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	adapter = chiadapter.NewV2(container.Router.Setup())
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return adapter.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(handler)
}
