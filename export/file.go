package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o750
	filePerm os.FileMode = 0o640
)

// FileSink writes exports into a directory of an afero filesystem.
// The written file is the delivery, so Release has nothing to free.
type FileSink struct {
	fs  afero.Fs
	dir string
}

// NewFileSink returns a sink writing into dir on fs.
func NewFileSink(fs afero.Fs, dir string) *FileSink {
	if dir == "" {
		dir = "."
	}

	return &FileSink{fs: fs, dir: filepath.Clean(dir)}
}

// Dir returns the target directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Acquire writes data to a temporary file and renames it onto dir/filename, so readers
// never observe a partially written document.
func (s *FileSink) Acquire(ctx context.Context, data []byte, filename string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}

	if filename == "" {
		return Handle{}, ErrEmptyFilename
	}

	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return Handle{}, fmt.Errorf("creating %q: %w", s.dir, err)
	}

	target := filepath.Join(s.dir, filepath.Base(filename))

	tmp, err := afero.TempFile(s.fs, s.dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return Handle{}, fmt.Errorf("creating temp file: %w", err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = s.fs.Chmod(tmpName, filePerm)
	}

	if err == nil {
		err = s.fs.Rename(tmpName, target)
	}

	if err != nil {
		_ = s.fs.Remove(tmpName)

		return Handle{}, fmt.Errorf("writing %q: %w", target, err)
	}

	return Handle{
		ID:       uuid.NewString(),
		Filename: filepath.Base(filename),
		Location: target,
		Size:     len(data),
	}, nil
}

// Release is a no-op for delivered files.
func (s *FileSink) Release(context.Context, Handle) error {
	return nil
}
