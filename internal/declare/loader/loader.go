package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	pkgdeclare "github.com/goliatone/go-schema/pkg/declare"
)

// Loader implements pkgdeclare.Loader over files, fs.FS entries, and
// in-memory payloads.
type Loader struct {
	options pkgdeclare.LoaderOptions
}

var _ pkgdeclare.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgdeclare.LoaderOptions) *Loader {
	return &Loader{options: options}
}

// Load fetches a declaration document from the provided source.
func (l *Loader) Load(ctx context.Context, src pkgdeclare.Source) (pkgdeclare.Document, error) {
	if src == nil {
		return pkgdeclare.Document{}, errors.New("declare loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgdeclare.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgdeclare.SourceKindFile:
		data, err = os.ReadFile(src.Location())
		if err != nil {
			err = fmt.Errorf("declare loader: read file %q: %w", src.Location(), err)
		}
	case pkgdeclare.SourceKindFS:
		if l.options.FileSystem == nil {
			err = fmt.Errorf("declare loader: fs source %q requires a configured filesystem", src.Location())
			break
		}
		data, err = readFS(l.options.FileSystem, src.Location())
	case pkgdeclare.SourceKindBytes:
		payload, ok := pkgdeclare.BytesPayload(src)
		if !ok {
			err = fmt.Errorf("declare loader: source %q carries no payload", src.Location())
			break
		}
		data = payload
	default:
		err = fmt.Errorf("declare loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgdeclare.Document{}, err
	}
	if len(data) == 0 {
		return pkgdeclare.Document{}, fmt.Errorf("declare loader: source %q is empty", src.Location())
	}
	return pkgdeclare.NewDocument(src, data), nil
}
