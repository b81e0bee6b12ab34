package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores uploaded assets on the local filesystem under a base
// directory, enforcing a maximum file size.
type Local struct {
	maxFileSize int
	basePath    string
}

// maxBytesWriter is a writer that errors when more than N bytes are written
type maxBytesWriter struct {
	w io.Writer
	n int // max bytes remaining
}

func (l *maxBytesWriter) Write(p []byte) (int, error) {
	if len(p) > l.n {
		return 0, io.EOF
	}
	n, err := l.w.Write(p)
	l.n -= n
	return n, err
}

// NewLocal creates a Local store rooted at basePath. maxSize is the
// largest number of bytes a single file may hold.
func NewLocal(basePath string, maxSize int) (*Local, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Local{basePath: p, maxFileSize: maxSize}, nil
}

// Save writes contents to path atomically: the data lands in a temporary
// file first and is renamed into place only when fully written.
func (l *Local) Save(path string, contents io.Reader) error {
	fp := l.fullPath(path)
	dir := filepath.Dir(fp)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	writer := &maxBytesWriter{w: tempFile, n: l.maxFileSize}
	_, err = io.Copy(writer, contents)
	if err != nil {
		tempFile.Close()
		// the limiting writer reports io.EOF when the cap is reached
		if err == io.EOF {
			return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", l.maxFileSize)
		}
		return fmt.Errorf("unable to write to file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, fp); err != nil {
		return fmt.Errorf("unable to move temporary file to final location: %w", err)
	}

	return nil
}

// Get opens the file at path for reading.
func (l *Local) Get(path string) (*os.File, error) {
	f, err := os.Open(l.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("unable to open the file: %w", err)
	}

	return f, nil
}

func (l *Local) fullPath(path string) string {
	return filepath.Join(l.basePath, path)
}
