// Package archive keeps a history of menu snapshots as timestamped JSON
// objects, either in an S3 bucket or a local directory.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// Writer receives one archive object. Close finalizes the object; for remote
// backends that is where the upload happens, so it takes the caller's ctx.
type Writer interface {
	Write(data []byte) (int, error)
	Close(ctx context.Context) error
}

type WriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (Writer, error)
}

// Archiver writes one object per archived snapshot under
// {prefix}/menu-{timestamp}.json.
type Archiver struct {
	factory WriterFactory
	bucket  string
	prefix  string
}

func NewArchiver(factory WriterFactory, bucket, prefix string) *Archiver {
	if prefix == "" {
		prefix = "menu-history"
	}
	return &Archiver{factory: factory, bucket: bucket, prefix: prefix}
}

func (a *Archiver) ArchiveSnapshot(ctx context.Context, snapshot *models.MenuSnapshot, fetchedAt time.Time) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot for archive: %w", err)
	}

	objectPath := fmt.Sprintf("%s/menu-%s.json", a.prefix, fetchedAt.UTC().Format("20060102T150405"))
	w, err := a.factory.NewWriter(ctx, a.bucket, objectPath)
	if err != nil {
		return fmt.Errorf("opening archive writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close(ctx)
		return fmt.Errorf("writing archive object: %w", err)
	}
	return w.Close(ctx)
}
