package intake

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/formintake/intake-api/cmd/server/internal/models"
	"github.com/formintake/intake-api/internal/mailer"
	"github.com/formintake/intake-api/internal/receive"
)

const name = "github.com/formintake/intake-api/cmd/server/internal/routes/intake"

var tracer = otel.Tracer(name)

// SubmissionStore is what the handlers need from the repository.
type SubmissionStore interface {
	Save(ctx context.Context, s *models.Submission) error
	FindAll(ctx context.Context) ([]models.Submission, error)
}

type Handler struct {
	store    SubmissionStore
	receiver *receive.Receiver
	notifier mailer.Notifier
}

func NewHandler(
	store SubmissionStore,
	receiver *receive.Receiver,
	notifier mailer.Notifier,
) *Handler {
	return &Handler{
		store:    store,
		receiver: receiver,
		notifier: notifier,
	}
}

func (h *Handler) AddRoutes(e *echo.Echo) {
	e.GET("/collectionData", h.ListSubmissions)
	e.POST("/addUser", h.AddUser)
}
