package schema

import (
	declareLoader "github.com/goliatone/go-schema/internal/declare/loader"
	declareParser "github.com/goliatone/go-schema/internal/declare/parser"
	openapiImporter "github.com/goliatone/go-schema/internal/openapi/importer"
	openapiLoader "github.com/goliatone/go-schema/internal/openapi/loader"
	reportEngine "github.com/goliatone/go-schema/internal/report/engine"
	"github.com/goliatone/go-schema/pkg/declare"
	pkgopenapi "github.com/goliatone/go-schema/pkg/openapi"
	"github.com/goliatone/go-schema/pkg/report"
)

// NewDeclarationLoader constructs a declaration document loader using the
// internal implementation while keeping the concrete type hidden from
// consumers.
func NewDeclarationLoader(options ...declare.LoaderOption) declare.Loader {
	cfg := declare.NewLoaderOptions(options...)
	return declareLoader.New(cfg)
}

// NewDeclarationParser constructs a YAML declaration parser backed by the
// internal implementation.
func NewDeclarationParser() declare.Parser {
	return declareParser.New()
}

// NewOpenAPILoader constructs an OpenAPI document loader.
func NewOpenAPILoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return openapiLoader.New(cfg)
}

// NewImporter constructs an importer that compiles OpenAPI component
// schemas into model definitions.
func NewImporter(options ...pkgopenapi.ImporterOption) pkgopenapi.Importer {
	cfg := pkgopenapi.NewImporterOptions(options...)
	return openapiImporter.New(cfg)
}

// NewReporter constructs a reporter backed by the built-in template engine
// and the embedded report templates.
func NewReporter() (*report.Reporter, error) {
	engine, err := reportEngine.New(reportEngine.WithFS(report.EmbeddedTemplates()))
	if err != nil {
		return nil, err
	}
	return report.NewReporter(engine)
}
