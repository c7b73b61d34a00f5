package loader

import (
	"context"
	"errors"
	"io/fs"
)

// fsHolder wraps the optional abstract filesystem so a nil fs.FS interface
// never ends up compared against typed nils.
type fsHolder struct {
	files fs.FS
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, err
	}
	return data, nil
}
