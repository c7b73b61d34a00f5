package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	schema "github.com/goliatone/go-schema"
	"github.com/goliatone/go-schema/pkg/declare"
	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/testsupport"
)

const accountDeclarations = `
models:
  - name: Address
    fields:
      - name: city
        type: string
        required: true
      - name: zip
        type: string
  - name: User
    roles:
      public:
        whitelist: [name, addresses]
    fields:
      - name: name
        type: string
        required: true
      - name: bio
        type: string
      - name: age
        type: int
        default: 7
      - name: addresses
        type: list
        min_size: 1
        of:
          type: model
          model: Address
`

func newLoadedEngine(t *testing.T) *schema.Engine {
	t.Helper()
	engine := schema.New()
	src := declare.SourceFromBytes("accounts.yml", []byte(accountDeclarations))
	if _, err := engine.LoadDeclarations(testsupport.Context(), src); err != nil {
		t.Fatalf("LoadDeclarations() error = %v", err)
	}
	return engine
}

func TestEngineLoadDeclarationsRegistersModels(t *testing.T) {
	engine := newLoadedEngine(t)

	user, ok := engine.Definition("User")
	if !ok {
		t.Fatalf("Definition(User) not found")
	}
	want := []string{"name", "bio", "age", "addresses"}
	if diff := cmp.Diff(want, user.FieldNames()); diff != "" {
		t.Fatalf("User fields mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineValidateFullPass(t *testing.T) {
	engine := newLoadedEngine(t)

	result, err := engine.Validate(testsupport.Context(), schema.Request{
		Model: "User",
		Input: testsupport.MustLoadValues(t, "testdata/user_input.json"),
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !result.Valid {
		t.Fatalf("Validate() invalid, errors %v", result.Errors)
	}
	if got := result.Output["age"]; got != int64(7) {
		t.Fatalf("age = %v (%T), want int64(7)", got, got)
	}

	testsupport.WriteGolden(t, "testdata/full_pass_output.json", result.Output)
	payload, err := json.MarshalIndent(result.Output, "", "  ")
	if err != nil {
		t.Fatalf("marshal output: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, "testdata/full_pass_output.json")
	if diff := testsupport.CompareGolden(want, string(payload)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineValidateReportsFieldErrors(t *testing.T) {
	engine := newLoadedEngine(t)

	result, err := engine.Validate(testsupport.Context(), schema.Request{
		Model: "User",
		Input: map[string]any{"bio": "Genius"},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Valid {
		t.Fatalf("Validate() expected failure")
	}
	if diff := cmp.Diff([]string{"This field is required."}, result.Errors["name"]); diff != "" {
		t.Fatalf("name errors mismatch (-want +got):\n%s", diff)
	}
	if result.Output != nil {
		t.Fatalf("Output = %v, want nil for invalid run", result.Output)
	}
}

func TestEngineValidatePartialSkipsAbsentFields(t *testing.T) {
	engine := newLoadedEngine(t)

	result, err := engine.Validate(testsupport.Context(), schema.Request{
		Model:   "User",
		Input:   map[string]any{"bio": "Genius"},
		Partial: true,
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !result.Valid {
		t.Fatalf("Validate() partial invalid, errors %v", result.Errors)
	}
	if got := result.Output["bio"]; got != "Genius" {
		t.Fatalf("bio = %v, want Genius", got)
	}
	if _, ok := result.Output["name"]; ok {
		t.Fatalf("partial output should not contain name")
	}
}

func TestEngineValidateAppliesRole(t *testing.T) {
	engine := newLoadedEngine(t)

	result, err := engine.Validate(testsupport.Context(), schema.Request{
		Model: "User",
		Input: map[string]any{
			"name": "Joe",
			"bio":  "Genius",
			"addresses": []any{
				map[string]any{"city": "NYC"},
			},
		},
		Role: "public",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, ok := result.Output["bio"]; ok {
		t.Fatalf("public role should filter bio, got %v", result.Output)
	}
	if _, ok := result.Output["name"]; !ok {
		t.Fatalf("public role should keep name")
	}
}

func TestEngineValidateUnknownModel(t *testing.T) {
	engine := schema.New()
	_, err := engine.Validate(testsupport.Context(), schema.Request{Model: "Nope"})
	var invalid *model.InvalidConfigurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("Validate() error = %v, want InvalidConfigurationError", err)
	}
}

func TestEngineValidateUnknownRole(t *testing.T) {
	engine := newLoadedEngine(t)
	_, err := engine.Validate(testsupport.Context(), schema.Request{
		Model: "User",
		Input: map[string]any{"name": "Joe", "addresses": []any{map[string]any{"city": "NYC"}}},
		Role:  "nope",
	})
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestEngineSharedRegistryAcrossSources(t *testing.T) {
	registry := model.NewRegistry()
	engine := schema.New(schema.WithRegistry(registry))

	base := declare.SourceFromBytes("base.yml", []byte(`
models:
  - name: Tag
    fields:
      - name: label
        type: string
        required: true
`))
	dependent := declare.SourceFromBytes("posts.yml", []byte(`
models:
  - name: Post
    fields:
      - name: title
        type: string
        required: true
      - name: tags
        type: list
        of:
          type: model
          model: Tag
`))
	if _, err := engine.LoadDeclarations(testsupport.Context(), base, dependent); err != nil {
		t.Fatalf("LoadDeclarations() error = %v", err)
	}
	if _, ok := registry.Lookup("Post"); !ok {
		t.Fatalf("registry missing Post")
	}
}
