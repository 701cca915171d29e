package fetch

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer(
	"github.com/formintake/intake-api/internal/fetch",
)

// Fetcher reads attachment bytes back through the same reference used to
// serve them publicly.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
