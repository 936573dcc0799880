package fileutil

import (
	"io"
	"io/fs"
	"os"

	"github.com/thoreinstein/hsv/internal/errors"
)

// MaxFileSize bounds the documents ReadFileInfo accepts.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned for files over MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileInfo reads path and returns its contents along with the metadata
// of the same open handle, so callers can key caches on what they read.
func ReadFileInfo(path string) ([]byte, fs.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, errors.Wrap(err, "stat file")
	}
	if info.Size() > MaxFileSize {
		return nil, nil, ErrFileTooLarge
	}

	// The size can grow between Stat and the read.
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	switch {
	case err != nil:
		return nil, nil, errors.Wrap(err, "reading file")
	case len(data) > MaxFileSize:
		return nil, nil, ErrFileTooLarge
	}
	return data, info, nil
}
