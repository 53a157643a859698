package archive

import (
	"context"
	"os"
	"path/filepath"
)

// LocalWriterFactory archives into a directory tree instead of S3; the
// bucket maps to the base directory.
type LocalWriterFactory struct{}

func (LocalWriterFactory) NewWriter(_ context.Context, bucket, objectPath string) (Writer, error) {
	full := filepath.Join(bucket, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	file, err := os.Create(full)
	if err != nil {
		return nil, err
	}
	return &localWriter{file: file}, nil
}

type localWriter struct {
	file *os.File
}

func (w *localWriter) Write(data []byte) (int, error) {
	return w.file.Write(data)
}

func (w *localWriter) Close(context.Context) error {
	return w.file.Close()
}
