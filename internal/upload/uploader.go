package upload

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer(
	"github.com/formintake/intake-api/internal/upload",
)

// Generic attachment persistence interface
type Uploader interface {
	// Create / Overwrite file contents stored under `name`
	Upload(ctx context.Context, reader io.Reader, length int64, name string) error
	// Check if a file is stored under `name` (focused on collision diagnostics, not authoritative existence)
	//
	// May always return false
	Exists(ctx context.Context, name string) (bool, error)
	// Provide an identifier for where files are being stored. Useful for logging and auditing purposes.
	StoreIdentifier(ctx context.Context) (string, error)
}
