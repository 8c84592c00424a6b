package echo

import (
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
)

type stubSource struct {
	form    map[string]string
	formErr error
	query   map[string]string
	body    any
	bodyErr error
}

func (s *stubSource) Form() (map[string]string, error) { return s.form, s.formErr }
func (s *stubSource) Query() map[string]string         { return s.query }
func (s *stubSource) JSON() (any, error)               { return s.body, s.bodyErr }

func TestMarshalEmptyResult(t *testing.T) {
	got, err := Marshal(&Result{})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	want := "{\n    \"args\": {},\n    \"form\": {},\n    \"json\": null\n}"
	if string(got) != want {
		t.Errorf("unexpected body:\n got: %q\nwant: %q", got, want)
	}
}

func TestMarshalSortsKeysAtEveryLevel(t *testing.T) {
	body, err := DecodeJSON([]byte(`{"zeta": {"b": 1, "a": [3, {"y": true, "x": null}]}, "alpha": "v"}`))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}

	got, err := Marshal(&Result{
		Args: map[string]string{"b": "2", "a": "1"},
		Form: map[string]string{"y": "world", "x": "hello"},
		JSON: body,
	})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	want := `{
    "args": {
        "a": "1",
        "b": "2"
    },
    "form": {
        "x": "hello",
        "y": "world"
    },
    "json": {
        "alpha": "v",
        "zeta": {
            "a": [
                3,
                {
                    "x": null,
                    "y": true
                }
            ],
            "b": 1
        }
    }
}`
	if string(got) != want {
		t.Errorf("unexpected body:\n got: %s\nwant: %s", got, want)
	}
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	got, err := Marshal(&Result{Args: map[string]string{"q": "<a&b>"}})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(got), `"q": "<a&b>"`) {
		t.Errorf("expected raw html characters, got %s", got)
	}
}

func TestMarshalWritesNonASCIIAsUTF8(t *testing.T) {
	body, err := DecodeJSON([]byte(`{"name": "Zo\u00eb", "city": "東京"}`))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}

	got, err := Marshal(&Result{Form: map[string]string{"x": "héllo"}, JSON: body})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	for _, want := range []string{`"x": "héllo"`, `"name": "Zoë"`, `"city": "東京"`} {
		if !strings.Contains(string(got), want) {
			t.Errorf("expected %s in body, got %s", want, got)
		}
	}
	if strings.Contains(string(got), `\u`) {
		t.Errorf("expected no unicode escapes, got %s", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	body, err := DecodeJSON([]byte(`{"k": "v", "n": 12345678901234567890, "list": [1.5, "x"]}`))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	original := &Result{
		Args: map[string]string{"a": "1"},
		Form: map[string]string{"x": "hello"},
		JSON: body,
	}

	encoded, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded Result
	dec := json.NewDecoder(strings.NewReader(string(encoded)))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		t.Fatalf("failed to decode encoded result: %v", err)
	}

	if !reflect.DeepEqual(decoded.Args, original.Args) {
		t.Errorf("args mismatch: got %v, want %v", decoded.Args, original.Args)
	}
	if !reflect.DeepEqual(decoded.Form, original.Form) {
		t.Errorf("form mismatch: got %v, want %v", decoded.Form, original.Form)
	}
	if !reflect.DeepEqual(decoded.JSON, original.JSON) {
		t.Errorf("json mismatch: got %v, want %v", decoded.JSON, original.JSON)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    any
		wantErr bool
	}{
		{name: "empty body", body: "", want: nil},
		{name: "whitespace body", body: " \n\t", want: nil},
		{name: "object", body: `{"k": "v"}`, want: map[string]any{"k": "v"}},
		{name: "array", body: `[1, 2]`, want: []any{json.Number("1"), json.Number("2")}},
		{name: "literal null", body: `null`, want: nil},
		{name: "string", body: `"text"`, want: "text"},
		{name: "malformed", body: `{"k":`, wantErr: true},
		{name: "trailing data", body: `{"a": 1} {"b": 2}`, wantErr: true},
		{name: "not json", body: `x=hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedJSON) {
					t.Fatalf("expected ErrMalformedJSON, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := map[string]bool{
		"":                                  false,
		"application/json":                  true,
		"application/json; charset=utf-8":   true,
		"Application/JSON":                  true,
		"application/vnd.api+json":          true,
		"application/x-www-form-urlencoded": false,
		"multipart/form-data; boundary=xyz": false,
		"text/json":                         false,
		"text/plain":                        false,
	}

	for contentType, want := range tests {
		if got := IsJSONContentType(contentType); got != want {
			t.Errorf("IsJSONContentType(%q) = %v, want %v", contentType, got, want)
		}
	}
}

func TestCollectCopiesMaps(t *testing.T) {
	src := &stubSource{
		form:  map[string]string{"x": "hello"},
		query: map[string]string{"a": "1"},
		body:  map[string]any{"k": "v"},
	}

	result, err := Collect(src)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	src.form["x"] = "changed"
	src.query["a"] = "changed"

	if result.Form["x"] != "hello" {
		t.Errorf("form aliases source state: %v", result.Form)
	}
	if result.Args["a"] != "1" {
		t.Errorf("args alias source state: %v", result.Args)
	}
	if !reflect.DeepEqual(result.JSON, map[string]any{"k": "v"}) {
		t.Errorf("unexpected json: %v", result.JSON)
	}
}

func TestCollectNilMapsBecomeEmpty(t *testing.T) {
	result, err := Collect(&stubSource{})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if result.Form == nil || result.Args == nil {
		t.Fatalf("expected empty maps, got form=%v args=%v", result.Form, result.Args)
	}
	if result.JSON != nil {
		t.Errorf("expected nil json, got %v", result.JSON)
	}
}

func TestCollectPropagatesErrors(t *testing.T) {
	formErr := errors.New("bad form")
	if _, err := Collect(&stubSource{formErr: formErr}); !errors.Is(err, formErr) {
		t.Errorf("expected form error, got %v", err)
	}

	if _, err := Collect(&stubSource{bodyErr: ErrMalformedJSON}); !errors.Is(err, ErrMalformedJSON) {
		t.Errorf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestFirstValues(t *testing.T) {
	values := url.Values{
		"a":     {"1", "2"},
		"b":     {"3"},
		"empty": {},
	}

	got := FirstValues(values)
	want := map[string]string{"a": "1", "b": "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
