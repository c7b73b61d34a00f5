package declare

// Document wraps a raw declaration payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument pairs a payload with the source it came from.
func NewDocument(source Source, raw []byte) Document {
	return Document{source: source, raw: raw}
}

// Source returns the document's origin.
func (d Document) Source() Source {
	return d.source
}

// Raw returns the document payload.
func (d Document) Raw() []byte {
	return d.raw
}

// Location is a convenience over Source().Location() that tolerates an
// absent source.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
