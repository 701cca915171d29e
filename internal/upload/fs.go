package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure FSUploader implements Uploader interface.
var _ Uploader = (*FSUploader)(nil)

// Flat local directory backed uploader. The directory is created on first
// write, mirroring how the stored files are later served statically.
type FSUploader struct {
	dir string
}

func NewFSUploader(dir string) *FSUploader {
	return &FSUploader{dir: dir}
}

func (u *FSUploader) Upload(
	ctx context.Context,
	reader io.Reader,
	length int64,
	name string,
) error {
	_, span := tracer.Start(ctx, "FSUploader.Upload", trace.WithAttributes(
		attribute.String("name", name),
		attribute.Int64("length", length),
	))
	defer span.End()

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create storage directory")
		return err
	}

	// Base strips any path separators a caller-supplied filename smuggled in.
	f, err := os.Create(filepath.Join(u.dir, filepath.Base(name)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create file")
		return err
	}

	_, err = io.Copy(f, reader)
	if err != nil {
		f.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write file contents")
		return err
	}

	if err := f.Close(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to close file")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "stored file")
	return nil
}

func (u *FSUploader) Exists(ctx context.Context, name string) (bool, error) {
	_, span := tracer.Start(ctx, "FSUploader.Exists", trace.WithAttributes(
		attribute.String("name", name),
	))
	defer span.End()

	_, err := os.Stat(filepath.Join(u.dir, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "did not find file")
			return false, nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to stat file")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "statted file")
	return true, nil
}

func (u *FSUploader) StoreIdentifier(_ context.Context) (string, error) {
	abs, err := filepath.Abs(u.dir)
	if err != nil {
		return u.dir, nil
	}

	return abs, nil
}
