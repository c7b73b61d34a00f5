package declare

import "path/filepath"

// Source identifies where a declaration document originated so loaders can
// operate on files, fs.FS entries, or in-memory payloads without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
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

// SourceFromBytes wraps an in-memory declaration document. The label only
// serves error messages.
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
