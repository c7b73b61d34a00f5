package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	schema "github.com/goliatone/go-schema"
	"github.com/goliatone/go-schema/pkg/declare"
	pkgopenapi "github.com/goliatone/go-schema/pkg/openapi"
	"github.com/goliatone/go-schema/pkg/prompt"
)

func main() {
	declarations := flag.String("schemas", "", "comma-separated declaration YAML paths")
	openapiDocs := flag.String("openapi", "", "comma-separated OpenAPI document paths or URLs")
	modelName := flag.String("model", "", "model to validate against")
	input := flag.String("input", "", "JSON or YAML input file (- for stdin)")
	partial := flag.Bool("partial", false, "validate only the supplied fields")
	role := flag.String("role", "", "serialization role applied to the output")
	describe := flag.Bool("describe", false, "print a summary of the model instead of validating")
	interactive := flag.Bool("interactive", false, "prompt for field values instead of reading input")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()
	engine := schema.New(
		schema.WithOpenAPILoader(schema.NewOpenAPILoader(pkgopenapi.WithHTTPFallback(30 * time.Second))),
	)

	if *declarations == "" && *openapiDocs == "" {
		log.Fatalf("at least one of -schemas or -openapi is required")
	}

	if *declarations != "" {
		if _, err := engine.LoadDeclarations(ctx, declarationSources(*declarations)...); err != nil {
			log.Fatalf("Failed to load declarations: %v", err)
		}
	}
	if *openapiDocs != "" {
		if _, err := engine.ImportOpenAPI(ctx, openapiSources(*openapiDocs)...); err != nil {
			log.Fatalf("Failed to import OpenAPI documents: %v", err)
		}
	}

	if *modelName == "" {
		log.Fatalf("-model is required")
	}

	if *describe {
		runDescribe(engine, *modelName, *output)
		return
	}

	values := map[string]any{}
	switch {
	case *interactive:
		def, ok := engine.Definition(*modelName)
		if !ok {
			log.Fatalf("Unknown model %q", *modelName)
		}
		inst, err := prompt.NewSession().Fill(ctx, def)
		if err != nil {
			log.Fatalf("Failed to collect input: %v", err)
		}
		values = inst.Data()
	case *input != "":
		var err error
		values, err = readValues(*input)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
	}

	result, err := engine.Validate(ctx, schema.Request{
		Model:   *modelName,
		Input:   values,
		Partial: *partial,
		Role:    *role,
	})
	if err != nil {
		log.Fatalf("Failed to validate: %v", err)
	}

	report(result, *modelName)

	if result.Valid {
		payload, err := json.MarshalIndent(result.Output, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode output: %v", err)
		}
		writeOutput(*output, payload)
		return
	}
	os.Exit(1)
}

func report(result schema.Result, model string) {
	if result.Valid {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.GreenString("valid"), model)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("invalid"), model)
	for field, messages := range result.Errors {
		for _, msg := range messages {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", color.YellowString(field), msg)
		}
	}
}

func runDescribe(engine *schema.Engine, model, output string) {
	if _, ok := engine.Definition(model); !ok {
		log.Fatalf("Unknown model %q", model)
	}
	reporter, err := schema.NewReporter()
	if err != nil {
		log.Fatalf("Failed to build reporter: %v", err)
	}
	def, _ := engine.Definition(model)
	out, err := reporter.Describe(def)
	if err != nil {
		log.Fatalf("Failed to describe model: %v", err)
	}
	writeOutput(output, []byte(out))
}

func writeOutput(path string, payload []byte) {
	if path == "" {
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Output written to %s\n", path)
}

func readValues(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return decodeValues(data)
}

// decodeValues accepts JSON or YAML field values. JSON is tried first so its
// number handling stays authoritative for .json inputs.
func decodeValues(data []byte) (map[string]any, error) {
	out := map[string]any{}
	jsonErr := json.Unmarshal(data, &out)
	if jsonErr == nil {
		return out, nil
	}
	if yamlErr := yaml.Unmarshal(data, &out); yamlErr != nil {
		return nil, fmt.Errorf("input is neither JSON (%v) nor YAML (%v)", jsonErr, yamlErr)
	}
	return out, nil
}

func declarationSources(raw string) []declare.Source {
	var out []declare.Source
	for _, path := range splitPaths(raw) {
		out = append(out, declare.SourceFromFile(path))
	}
	return out
}

func openapiSources(raw string) []pkgopenapi.Source {
	var out []pkgopenapi.Source
	for _, path := range splitPaths(raw) {
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			out = append(out, pkgopenapi.SourceFromURL(path))
			continue
		}
		out = append(out, pkgopenapi.SourceFromFile(path))
	}
	return out
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
