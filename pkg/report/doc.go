// Package report renders human-readable summaries of model definitions and
// validation outcomes. A TemplateRenderer abstracts the template engine so
// reports stay testable; the default pongo2-backed engine lives under
// internal/report with embedded templates exposed here.
package report
