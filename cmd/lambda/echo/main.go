package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"sample-echo-api/internal/config"
	"sample-echo-api/pkg/lambda"
	"sample-echo-api/pkg/server"
)

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	container.Logger.WithField("mode", config.GetDeploymentMode()).Info("Lambda function initialized")

	adapter := lambda.NewAdapter(container.Router, container.Logger)
	awslambda.Start(adapter.Invoke)
}
