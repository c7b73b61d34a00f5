package importer_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schema/internal/openapi/importer"
	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/openapi"
	"github.com/goliatone/go-schema/pkg/testsupport"
)

func newDocument(t *testing.T, payload string) openapi.Document {
	t.Helper()
	return openapi.MustNewDocument(openapi.SourceFromBytes("inline.json", []byte(payload)), []byte(payload))
}

func petstoreDocument(t *testing.T) openapi.Document {
	t.Helper()
	return testsupport.LoadOpenAPIDocument(t, "testdata/petstore.json")
}

func TestDefinitionsBuildsComponents(t *testing.T) {
	imp := importer.New(openapi.NewImporterOptions())
	registry := model.NewRegistry()

	defs, err := imp.Definitions(testsupport.Context(), petstoreDocument(t), registry)
	if err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}

	var names []string
	for _, def := range defs {
		names = append(names, def.Name())
	}
	if diff := cmp.Diff([]string{"Address", "User"}, names); diff != "" {
		t.Fatalf("definition names mismatch (-want +got):\n%s", diff)
	}

	user, ok := registry.Lookup("User")
	if !ok {
		t.Fatalf("registry missing User definition")
	}
	wantFields := []string{"active", "addresses", "age", "joined", "name"}
	if diff := cmp.Diff(wantFields, user.FieldNames()); diff != "" {
		t.Fatalf("User field order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsProducesWorkingModels(t *testing.T) {
	imp := importer.New(openapi.NewImporterOptions())
	registry := model.NewRegistry()

	if _, err := imp.Definitions(testsupport.Context(), petstoreDocument(t), registry); err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	user, _ := registry.Lookup("User")

	inst, err := user.New(map[string]any{
		"name": "Joe",
		"age":  "30",
		"addresses": []any{
			map[string]any{"city": "NYC"},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !inst.Validate(nil) {
		t.Fatalf("Validate() reported errors: %v", inst.Errors())
	}

	if got := inst.MustGet("age"); got != int64(30) {
		t.Fatalf("age = %v (%T), want int64(30)", got, got)
	}

	addresses := inst.MustGet("addresses").([]any)
	city := addresses[0].(*model.Instance).MustGet("city")
	if city != "NYC" {
		t.Fatalf("city = %v, want NYC", city)
	}
}

func TestDefinitionsAppliesDefaultsAndConstraints(t *testing.T) {
	imp := importer.New(openapi.NewImporterOptions())
	registry := model.NewRegistry()

	if _, err := imp.Definitions(testsupport.Context(), petstoreDocument(t), registry); err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	user, _ := registry.Lookup("User")

	inst := user.MustNew(map[string]any{"name": "Ana"})
	if got := inst.MustGet("age"); got != int64(7) {
		t.Fatalf("default age = %v (%T), want int64(7)", got, got)
	}

	// minItems on addresses means an explicit nil collection is reported.
	if inst.Validate(map[string]any{"addresses": nil}) {
		t.Fatalf("Validate() expected error for nil addresses")
	}
	if diff := cmp.Diff([]string{"This field is required."}, inst.FieldErrors("addresses")); diff != "" {
		t.Fatalf("addresses errors mismatch (-want +got):\n%s", diff)
	}

	inst2 := user.MustNew(map[string]any{"name": "Ana"})
	if inst2.Validate(map[string]any{"addresses": []any{}}) {
		t.Fatalf("Validate() expected min size error for empty addresses")
	}
	if diff := cmp.Diff([]string{"Please provide at least 1 item."}, inst2.FieldErrors("addresses")); diff != "" {
		t.Fatalf("addresses min size errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsRestrictsToNamedSchemas(t *testing.T) {
	imp := importer.New(openapi.NewImporterOptions(openapi.WithSchemas("Address")))
	registry := model.NewRegistry()

	defs, err := imp.Definitions(testsupport.Context(), petstoreDocument(t), registry)
	if err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	if len(defs) != 1 || defs[0].Name() != "Address" {
		t.Fatalf("defs = %v, want only Address", defs)
	}
	if _, ok := registry.Lookup("User"); ok {
		t.Fatalf("registry should not contain User")
	}
}

func TestDefinitionsRejectsUnknownSchemaSelection(t *testing.T) {
	imp := importer.New(openapi.NewImporterOptions(openapi.WithSchemas("Nope")))
	_, err := imp.Definitions(testsupport.Context(), petstoreDocument(t), model.NewRegistry())
	if err == nil {
		t.Fatalf("Definitions() expected error for unknown schema")
	}
}

func TestDefinitionsInlineObject(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "inline", "version": "1.0.0"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Order": {
	        "type": "object",
	        "properties": {
	          "shipping": {
	            "type": "object",
	            "required": ["street"],
	            "properties": {"street": {"type": "string"}}
	          }
	        }
	      }
	    }
	  }
	}`
	imp := importer.New(openapi.NewImporterOptions())
	registry := model.NewRegistry()

	if _, err := imp.Definitions(testsupport.Context(), newDocument(t, doc), registry); err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	order, _ := registry.Lookup("Order")
	inst := order.MustNew(map[string]any{
		"shipping": map[string]any{"street": "Main St"},
	})
	shipping := inst.MustGet("shipping").(*model.Instance)
	if got := shipping.MustGet("street"); got != "Main St" {
		t.Fatalf("street = %v, want Main St", got)
	}
	// Anonymous inline definitions stay out of the registry.
	if _, ok := registry.Lookup("Order.shipping"); ok {
		t.Fatalf("inline definition should not be registered")
	}
}

func TestDefinitionsDetectsReferenceCycles(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "cycle", "version": "1.0.0"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "A": {
	        "type": "object",
	        "properties": {"b": {"$ref": "#/components/schemas/B"}}
	      },
	      "B": {
	        "type": "object",
	        "properties": {"a": {"$ref": "#/components/schemas/A"}}
	      }
	    }
	  }
	}`
	imp := importer.New(openapi.NewImporterOptions(openapi.WithReferenceResolution(false)))
	_, err := imp.Definitions(testsupport.Context(), newDocument(t, doc), model.NewRegistry())
	if err == nil {
		t.Fatalf("Definitions() expected cycle error")
	}
	var invalid *model.InvalidConfigurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("Definitions() error = %T, want InvalidConfigurationError", err)
	}
}
