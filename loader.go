package ujson

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Load opens path read-only on fs, slurps it fully into one contiguous
// region, and returns a Reader pre-seated on it. Open, stat, and read
// failures are returned directly; there is no partial-success case.
//
// This is the Go analogue of the original library's file-loader
// collaborator (ujson_load), parameterized over afero.Fs so callers can
// substitute an in-memory filesystem in tests instead of touching disk.
func Load(fs afero.Fs, path string) (*Reader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ujson: open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("ujson: stat %q: %w", path, err)
	}

	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("ujson: read %q: %w", path, err)
	}

	return NewReader(buf), nil
}

// LoadFile is a convenience wrapper around Load using the real OS
// filesystem.
func LoadFile(path string) (*Reader, error) {
	return Load(afero.NewOsFs(), path)
}
