// Package lambda serves AWS Lambda invocations from API Gateway through the
// gin router.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedEvent is returned for payloads that are not API Gateway proxy events
var ErrUnsupportedEvent = errors.New("unsupported lambda event")

// Adapter proxies API Gateway events of both payload formats to a gin engine
type Adapter struct {
	rest    *ginadapter.GinLambda
	httpAPI *ginadapter.GinLambdaV2
	logger  logrus.FieldLogger
}

// NewAdapter creates an adapter serving events through router
func NewAdapter(router *gin.Engine, logger logrus.FieldLogger) *Adapter {
	return &Adapter{
		rest:    ginadapter.New(router),
		httpAPI: ginadapter.NewV2(router),
		logger:  logger,
	}
}

// HandleAPIGatewayProxy serves a REST API (payload format 1.0) event
func (a *Adapter) HandleAPIGatewayProxy(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	event = withProxyRequestID(event)
	a.logInvocation(ctx, "1.0", event.HTTPMethod, event.Path)

	return a.rest.ProxyWithContext(ctx, event)
}

// HandleAPIGatewayV2 serves an HTTP API or function URL (payload format 2.0) event
func (a *Adapter) HandleAPIGatewayV2(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	event = withV2RequestID(stripStage(event))
	a.logInvocation(ctx, "2.0", event.RequestContext.HTTP.Method, event.RawPath)

	return a.httpAPI.ProxyWithContext(ctx, event)
}

// eventProbe holds the fields that tell the proxy payload formats apart
type eventProbe struct {
	Version    string `json:"version"`
	HTTPMethod string `json:"httpMethod"`
	RawPath    string `json:"rawPath"`
}

// Invoke accepts any raw payload and dispatches on the proxy payload format.
// It is the function registered with the Lambda runtime.
func (a *Adapter) Invoke(ctx context.Context, payload json.RawMessage) (any, error) {
	var probe eventProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEvent, err)
	}

	switch {
	case probe.Version == "2.0" || probe.RawPath != "":
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode http api event: %w", err)
		}
		return a.HandleAPIGatewayV2(ctx, event)

	case probe.HTTPMethod != "":
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode rest api event: %w", err)
		}
		return a.HandleAPIGatewayProxy(ctx, event)

	default:
		return nil, ErrUnsupportedEvent
	}
}

func (a *Adapter) logInvocation(ctx context.Context, format, method, path string) {
	fields := logrus.Fields{
		"payload_format": format,
		"method":         method,
		"path":           path,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
		fields["function_arn"] = lc.InvokedFunctionArn
	}
	a.logger.WithFields(fields).Debug("Lambda invocation")
}
