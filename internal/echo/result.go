// Package echo builds the document returned by the echo route: a snapshot of
// a request's form fields, query arguments and JSON body.
package echo

import (
	"fmt"
	"net/url"
)

// Result is the echoed view of a single request. Field order is alphabetical
// so the encoded object keeps args, form, json order.
type Result struct {
	Args map[string]string `json:"args"`
	Form map[string]string `json:"form"`
	JSON any               `json:"json"`
}

// Source is the capability set the echo route needs from a request
type Source interface {
	// Form returns the decoded URL-encoded or multipart form fields.
	Form() (map[string]string, error)
	// Query returns the decoded query string arguments.
	Query() map[string]string
	// JSON returns the parsed body, or nil when the request carries no JSON.
	JSON() (any, error)
}

// Collect reads all three fields from src into a fresh Result. The maps are
// copied, so the result never aliases request state.
func Collect(src Source) (*Result, error) {
	form, err := src.Form()
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}

	body, err := src.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to read json body: %w", err)
	}

	return &Result{
		Args: copyMap(src.Query()),
		Form: copyMap(form),
		JSON: body,
	}, nil
}

// FirstValues flattens multi-valued fields, keeping the first value of each key
func FirstValues(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		out[key] = vals[0]
	}
	return out
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
