package intake

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/formintake/intake-api/cmd/server/internal/response"
)

// ListSubmissions returns every stored submission verbatim. No filtering,
// pagination, or projection.
func (h *Handler) ListSubmissions(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListSubmissions")
	defer span.End()

	subs, err := h.store.FindAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch submissions")
		span.RecordError(err)
		return response.FetchFailedError
	}

	span.SetAttributes(attribute.Int("count", len(subs)))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")

	return c.JSON(http.StatusOK, subs)
}
