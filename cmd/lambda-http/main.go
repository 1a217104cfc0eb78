package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"application-backend/internal/bootstrap"
	"application-backend/internal/shared/config"
	"application-backend/internal/shared/telemetry"
)

// sourceIPHeader carries the API Gateway source IP to gin. Any client-supplied
// value is replaced before the request reaches the router.
const sourceIPHeader = "X-Lambda-Source-Ip"

var (
	initOnce  sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2
)

func initApp() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	telemetry.Setup(cfg.Env)
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		initErr = err
		return
	}
	app.Router.TrustedPlatform = sourceIPHeader
	ginLambda = ginadapter.NewV2(app.Router)
}

// withSourceIP overwrites every casing of sourceIPHeader with the source IP
// recorded by API Gateway.
func withSourceIP(req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPRequest {
	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		if !strings.EqualFold(k, sourceIPHeader) {
			headers[k] = v
		}
	}
	headers[strings.ToLower(sourceIPHeader)] = req.RequestContext.HTTP.SourceIP
	req.Headers = headers
	return req
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": initErr})
		body, _ := json.Marshal(map[string]any{
			"error": map[string]string{"code": "internal", "message": "bootstrap failed"},
		})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       string(body),
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}
	return ginLambda.ProxyWithContext(ctx, withSourceIP(req))
}

func main() {
	lambda.Start(handler)
}
