package loader

import (
	"fmt"
	"io/fs"
)

func readFS(files fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("declare loader: read fs entry %q: %w", name, err)
	}
	return data, nil
}
