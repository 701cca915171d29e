package receive

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/formintake/intake-api/internal/audit"
	"github.com/formintake/intake-api/internal/upload"
)

var tracer = otel.Tracer(
	"github.com/formintake/intake-api/internal/receive",
)

const (
	// FieldName is the multipart field the attachments arrive under.
	FieldName = "images"
	// MaxFiles caps how many attachments a single request may carry.
	MaxFiles = 5
	// URLPrefix is where stored attachments are served from.
	URLPrefix = "/uploads/"
)

var ErrTooManyFiles = fmt.Errorf("more than %d files submitted", MaxFiles)

// Receiver persists incoming multipart attachments and hands back stable,
// publicly fetchable references to them.
type Receiver struct {
	store      upload.Uploader
	publicBase string
}

// New builds a Receiver. publicBase overrides the request-derived base URL
// for deployments behind a proxy; empty means use the request scheme+host.
func New(store upload.Uploader, publicBase string) *Receiver {
	return &Receiver{
		store:      store,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

// StoredName builds the flat-store name for one uploaded file. Uniqueness
// comes from the receipt timestamp; two identically named files arriving in
// the same millisecond could collide.
func StoredName(field string, receivedAt time.Time, original string) string {
	return fmt.Sprintf(
		"%s-%d-%s",
		field,
		receivedAt.UnixMilli(),
		strings.ReplaceAll(original, " ", "_"),
	)
}

// Receive stores every file part and returns one absolute URL per file, in
// receipt order. A failed write fails the whole request; files already
// written are not cleaned up.
func (r *Receiver) Receive(
	ctx context.Context,
	files []*multipart.FileHeader,
	receivedAt time.Time,
	scheme string,
	host string,
) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Receiver.Receive", trace.WithAttributes(
		attribute.Int("files", len(files)),
		attribute.Int64("receivedAt_ms", receivedAt.UnixMilli()),
	))
	defer span.End()

	if len(files) > MaxFiles {
		span.RecordError(ErrTooManyFiles)
		span.SetStatus(codes.Error, "too many files")
		return nil, ErrTooManyFiles
	}

	base := r.publicBase
	if base == "" {
		base = fmt.Sprintf("%s://%s", scheme, host)
	}

	storeID, err := r.store.StoreIdentifier(ctx)
	if err != nil {
		storeID = "unknown"
	}

	refs := make([]string, 0, len(files))
	for _, header := range files {
		name := StoredName(FieldName, receivedAt, header.Filename)

		err := r.storeOne(ctx, header, name)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to store attachment")
			return nil, fmt.Errorf("failed to store attachment %q: %w", header.Filename, err)
		}

		ref := base + URLPrefix + name
		audit.LogFileStored(audit.Context{}, storeID, name, ref)
		refs = append(refs, ref)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "stored attachments")
	return refs, nil
}

func (r *Receiver) storeOne(
	ctx context.Context,
	header *multipart.FileHeader,
	name string,
) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file part: %w", err)
	}
	defer file.Close()

	return r.store.Upload(ctx, file, header.Size, name)
}
