package echo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// Indent is the per-level indentation of encoded results
const Indent = "    "

// ErrMalformedJSON is returned when a body that claims to be JSON does not parse
var ErrMalformedJSON = errors.New("malformed json body")

// Marshal encodes r with object keys sorted at every level and four-space
// indentation. Map keys are sorted by encoding/json; the struct fields of
// Result are declared in sorted order.
func Marshal(r *Result) ([]byte, error) {
	if r == nil {
		r = &Result{}
	}
	out := Result{
		Args: r.Args,
		Form: r.Form,
		JSON: r.JSON,
	}
	if out.Args == nil {
		out.Args = map[string]string{}
	}
	if out.Form == nil {
		out.Form = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode echo result: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeJSON parses a request body. An empty or whitespace-only body yields
// nil. Numbers are kept as json.Number so they re-encode unchanged.
func DecodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrMalformedJSON)
	}

	return v, nil
}

// IsJSONContentType reports whether a Content-Type header declares a JSON body:
// application/json or any application/*+json type.
func IsJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}
