package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/types"
)

func TestSerializeRoundTrip(t *testing.T) {
	def := model.Define("Child",
		model.Field("name", types.String(types.Required())),
		model.Field("bio", types.String()),
	)
	input := map[string]any{"name": "Joey", "bio": "Genius"}

	inst, err := def.New(input)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if diff := cmp.Diff(input, inst.Serialize()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeSkipsUnsetFields(t *testing.T) {
	def := model.Define("User",
		model.Field("name", types.String()),
		model.Field("bio", types.String()),
	)
	inst := def.MustNew(map[string]any{"name": "Joe"})

	want := map[string]any{"name": "Joe"}
	if diff := cmp.Diff(want, inst.Serialize()); diff != "" {
		t.Fatalf("serialize mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeRoleWhitelist(t *testing.T) {
	def := model.Define("User",
		model.Field("name", types.String(types.Required())),
		model.Field("password", types.String()),
		model.WithRoles(map[string]model.Role{
			"public": model.Whitelist("name"),
		}),
	)
	inst := def.MustNew(map[string]any{"name": "a", "password": "s3cret"})

	got, err := inst.SerializeRole("public")
	if err != nil {
		t.Fatalf("SerializeRole returned error: %v", err)
	}
	want := map[string]any{"name": "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("role output mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeRoleBlacklist(t *testing.T) {
	def := model.Define("User",
		model.Field("name", types.String()),
		model.Field("password", types.String()),
		model.WithRoles(map[string]model.Role{
			"safe": model.Blacklist("password"),
		}),
	)
	inst := def.MustNew(map[string]any{"name": "a", "password": "s3cret"})

	got, err := inst.SerializeRole("safe")
	if err != nil {
		t.Fatalf("SerializeRole returned error: %v", err)
	}
	want := map[string]any{"name": "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("role output mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeUndefinedRoleFails(t *testing.T) {
	def := model.Define("User", model.Field("name", types.String()))
	inst := def.MustNew(map[string]any{"name": "a"})

	_, err := inst.SerializeRole("public")
	if err == nil {
		t.Fatal("expected error for undefined role")
	}
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestRolePropagatesToNestedModels(t *testing.T) {
	address := model.Define("Address",
		model.Field("city", types.String()),
		model.Field("plus_code", types.String()),
		model.WithRoles(map[string]model.Role{
			"public": model.Whitelist("city"),
		}),
	)
	user := model.Define("User",
		model.Field("name", types.String(types.Required())),
		model.Field("password", types.String()),
		model.Field("addresses", types.List(model.Nested(address))),
		model.WithRoles(map[string]model.Role{
			"public": model.Whitelist("name", "addresses"),
		}),
	)

	inst := user.MustNew(nil)
	ok := inst.Validate(map[string]any{
		"name":     "a",
		"password": "x",
		"addresses": []any{
			map[string]any{"city": "gotham", "plus_code": "87G8Q2"},
		},
	})
	if !ok {
		t.Fatalf("validation failed: %v", inst.Errors())
	}

	addresses := inst.MustGet("addresses").([]any)
	first := addresses[0].(*model.Instance)
	if got := first.MustGet("city"); got != "gotham" {
		t.Fatalf("expected city %q, got %v", "gotham", got)
	}

	got, err := inst.SerializeRole("public")
	if err != nil {
		t.Fatalf("SerializeRole returned error: %v", err)
	}
	want := map[string]any{
		"name": "a",
		"addresses": []any{
			map[string]any{"city": "gotham"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("propagated role output mismatch (-want +got):\n%s", diff)
	}
}

func TestRoleFallsBackToUnfilteredNestedSerialization(t *testing.T) {
	address := model.Define("Address", model.Field("city", types.String()))
	user := model.Define("User",
		model.Field("name", types.String()),
		model.Field("address", model.Nested(address)),
		model.WithRoles(map[string]model.Role{
			"public": model.Whitelist("name", "address"),
		}),
	)

	inst := user.MustNew(map[string]any{
		"name":    "a",
		"address": map[string]any{"city": "gotham"},
	})

	got, err := inst.SerializeRole("public")
	if err != nil {
		t.Fatalf("SerializeRole returned error: %v", err)
	}
	want := map[string]any{
		"name":    "a",
		"address": map[string]any{"city": "gotham"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fallback output mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedSerializeEmitsPlainMappings(t *testing.T) {
	user := model.Define("User", model.Field("name", types.String()))
	card := model.Define("Card", model.Field("user", model.Nested(user)))

	inst := card.MustNew(map[string]any{"user": map[string]any{"name": "Doggy"}})

	want := map[string]any{"user": map[string]any{"name": "Doggy"}}
	if diff := cmp.Diff(want, inst.Serialize()); diff != "" {
		t.Fatalf("nested serialize mismatch (-want +got):\n%s", diff)
	}
}
