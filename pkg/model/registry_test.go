package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/types"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := model.NewRegistry()
	def := model.Define("User", model.Field("name", types.String()))

	if err := reg.Register(def); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, ok := reg.Lookup("User")
	if !ok || got != def {
		t.Fatal("expected Lookup to return the registered definition")
	}
	if _, ok := reg.Lookup("Ghost"); ok {
		t.Fatal("unknown names must not resolve")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := model.NewRegistry()
	def := model.Define("User", model.Field("name", types.String()))

	if err := reg.Register(def); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	err := reg.Register(model.Define("User"))
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	reg := model.NewRegistry()
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected error for nil definition")
	}
	if err := reg.Register(model.Define("")); err == nil {
		t.Fatal("expected error for unnamed definition")
	}
}
