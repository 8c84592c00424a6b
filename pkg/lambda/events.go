package lambda

import (
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	requestIDHeader = "X-Request-ID"
	defaultStage    = "$default"
)

// stripStage removes the /<stage> prefix HTTP APIs put in front of the route
// path on named stages. Events from the $default stage and function URLs are
// returned unchanged.
func stripStage(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPRequest {
	stage := event.RequestContext.Stage
	if stage == "" || stage == defaultStage {
		return event
	}

	prefix := "/" + stage
	event.RawPath = trimPathPrefix(event.RawPath, prefix)
	event.RequestContext.HTTP.Path = trimPathPrefix(event.RequestContext.HTTP.Path, prefix)
	return event
}

func trimPathPrefix(path, prefix string) string {
	switch {
	case path == prefix:
		return "/"
	case strings.HasPrefix(path, prefix+"/"):
		return path[len(prefix):]
	default:
		return path
	}
}

// withProxyRequestID forwards the API Gateway request id as X-Request-ID
// unless the client sent one
func withProxyRequestID(event events.APIGatewayProxyRequest) events.APIGatewayProxyRequest {
	id := event.RequestContext.RequestID
	if id == "" || hasHeader(event.Headers, requestIDHeader) || hasMultiHeader(event.MultiValueHeaders, requestIDHeader) {
		return event
	}

	// MultiValueHeaders replace Headers when present
	if len(event.MultiValueHeaders) > 0 {
		headers := make(map[string][]string, len(event.MultiValueHeaders)+1)
		for k, v := range event.MultiValueHeaders {
			headers[k] = v
		}
		headers[requestIDHeader] = []string{id}
		event.MultiValueHeaders = headers
		return event
	}

	event.Headers = withHeader(event.Headers, requestIDHeader, id)
	return event
}

func withV2RequestID(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPRequest {
	id := event.RequestContext.RequestID
	if id == "" || hasHeader(event.Headers, requestIDHeader) {
		return event
	}
	event.Headers = withHeader(event.Headers, requestIDHeader, id)
	return event
}

// withHeader returns a copy of headers with key set
func withHeader(headers map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}
	out[key] = value
	return out
}

func hasHeader(headers map[string]string, key string) bool {
	for k := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(key) {
			return true
		}
	}
	return false
}

func hasMultiHeader(headers map[string][]string, key string) bool {
	for k := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(key) {
			return true
		}
	}
	return false
}
