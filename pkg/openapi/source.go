package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries, remote URLs, or in-memory payloads
// without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL returns a Source for an HTTP or HTTPS document. The URL is
// validated up front; a malformed one is a wiring mistake, so it panics the
// same way a malformed field declaration would.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("openapi: url source needs a non-empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("openapi: url source %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

type bytesSource struct {
	label string
	data  []byte
}

func (s bytesSource) Location() string {
	return s.label
}

func (s bytesSource) Kind() SourceKind {
	return SourceKindBytes
}

// Payload returns the in-memory document.
func (s bytesSource) Payload() []byte {
	return s.data
}

// SourceFromBytes wraps an in-memory OpenAPI document. The label only serves
// error messages.
func SourceFromBytes(label string, data []byte) Source {
	return bytesSource{label: label, data: data}
}

// BytesPayload extracts the payload from a bytes source, reporting whether
// the source carries one.
func BytesPayload(src Source) ([]byte, bool) {
	bs, ok := src.(bytesSource)
	if !ok {
		return nil, false
	}
	return bs.Payload(), true
}
