// Package types defines the field-type contract shared by every schema
// field: conversion of raw input into a typed value and validation of the
// typed value. Scalar variants (String, Int, Bool, DateTime) and the generic List
// container live here; the model-typed field lives in pkg/model because it
// closes over model definitions. Field types are configured through
// functional options (Required, Default, MinSize, Check, Sanitized) so
// declarations read the same whether built in code or from a loader.
package types
