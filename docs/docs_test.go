package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDocumentListsRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("Failed to read registered document: %v", err)
	}

	var spec struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("Registered document is not valid JSON: %v", err)
	}

	if spec.Swagger != "2.0" {
		t.Errorf("Expected swagger 2.0, got %q", spec.Swagger)
	}

	want := map[string][]string{
		"/foo":    {"get", "post"},
		"/health": {"get"},
	}
	for path, methods := range want {
		ops, ok := spec.Paths[path]
		if !ok {
			t.Errorf("Expected path %s in document", path)
			continue
		}
		for _, method := range methods {
			if _, ok := ops[method]; !ok {
				t.Errorf("Expected %s %s in document", method, path)
			}
		}
		if len(ops) != len(methods) {
			t.Errorf("Expected only %v on %s, got %d operations", methods, path, len(ops))
		}
	}
}
