package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-schema/pkg/model"
)

func TestNewOptionsAcceptsKnownKeys(t *testing.T) {
	opts, err := model.NewOptions(nil, map[string]any{
		"klass": nil,
		"roles": nil,
	})
	if err != nil {
		t.Fatalf("NewOptions returned error: %v", err)
	}
	if opts.Roles != nil {
		t.Fatalf("expected nil roles, got %v", opts.Roles)
	}
}

func TestNewOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := model.NewOptions(nil, map[string]any{
		"klass": nil,
		"roles": nil,
		"badkw": nil,
	})
	if err == nil {
		t.Fatal("expected error for unknown option key")
	}
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewOptionsWithoutKeys(t *testing.T) {
	opts, err := model.NewOptions(nil, nil)
	if err != nil {
		t.Fatalf("NewOptions returned error: %v", err)
	}
	if opts.Klass != nil || opts.Roles != nil || opts.Namespace != "" {
		t.Fatalf("expected zero options, got %+v", opts)
	}
}

func TestDefinitionOptions(t *testing.T) {
	def := model.Define("Foo",
		model.WithNamespace("foo"),
		model.WithRoles(map[string]model.Role{}),
	)

	opts := def.Options()
	if opts.Klass != def {
		t.Fatal("expected options.Klass to point back at the definition")
	}
	if opts.Namespace != "foo" {
		t.Fatalf("expected namespace %q, got %q", "foo", opts.Namespace)
	}
	if opts.Roles == nil || len(opts.Roles) != 0 {
		t.Fatalf("expected declared empty role map, got %v", opts.Roles)
	}
}
