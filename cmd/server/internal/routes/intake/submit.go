package intake

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"

	srverr "github.com/formintake/intake-api/cmd/server/internal/error"
	"github.com/formintake/intake-api/cmd/server/internal/models"
	"github.com/formintake/intake-api/cmd/server/internal/response"
	"github.com/formintake/intake-api/internal/audit"
	"github.com/formintake/intake-api/internal/receive"
	"github.com/formintake/intake-api/internal/types"
)

// IntakeResponse is the success body of the intake endpoint.
type IntakeResponse struct {
	Message string            `json:"message"`
	Data    models.Submission `json:"data"`
}

// AddUser runs the intake pipeline: receive attachments, validate, persist,
// notify. A notification failure is reported to the caller but the stored
// submission stays committed; persistence and notification are deliberately
// not coupled transactionally.
func (h *Handler) AddUser(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "AddUser")
	defer span.End()

	span.AddEvent("received intake request")

	requestTime, ok := c.Get("time").(time.Time)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("time: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(attribute.Int64("request.timestamp_ms", requestTime.UnixMilli()))

	var form types.IntakeForm

	span.AddEvent("parsing form fields")
	err := c.Bind(&form)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse form fields")
		span.RecordError(err)
		return response.AllFieldsRequiredError
	}

	files := formFiles(c)

	span.AddEvent("validating form fields and attachment presence")
	if err := c.Validate(form); err != nil || len(files) == 0 {
		span.SetStatus(codes.Ok, "missing required fields or attachments")
		span.RecordError(err)
		return response.AllFieldsRequiredError
	}

	span.AddEvent("storing attachments")
	refs, err := h.receiver.Receive(ctx, files, requestTime, c.Scheme(), c.Request().Host)
	if err != nil {
		span.SetStatus(codes.Error, "failed to store attachments")
		span.RecordError(err)
		return response.IntakeFailedError
	}

	sub := &models.Submission{
		Name:    form.Name,
		Age:     form.Age,
		Message: form.Message,
		Email:   form.Email,
		Images:  datatypes.NewJSONSlice(refs),
	}

	span.AddEvent("inserting into database")
	err = h.store.Save(ctx, sub)
	if err != nil {
		span.SetStatus(codes.Error, "failed to insert")
		span.RecordError(err)
		return response.IntakeFailedError
	}

	submissionID := sub.ID.String()
	span.SetAttributes(attribute.String("submission.id", submissionID))

	auditContext := audit.Context{SubmissionID: &submissionID}
	audit.LogSubmissionStored(auditContext, sub.Name, sub.Email, len(sub.Images))

	span.AddEvent("notifying submitter")
	err = h.notifier.Notify(ctx, form, refs)
	if err != nil {
		// the stored submission stays committed
		audit.LogNotificationFailed(auditContext, form.Email, err.Error())
		span.SetStatus(codes.Error, "failed to notify submitter")
		span.RecordError(err)
		return response.IntakeFailedError
	}

	audit.LogNotificationSent(auditContext, form.Email)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")

	return c.JSON(http.StatusCreated, IntakeResponse{
		Message: "User added and email sent",
		Data:    *sub,
	})
}

// formFiles pulls the attachment parts out of the multipart body. A body
// without a multipart form simply has no attachments; validation rejects
// the request further down.
func formFiles(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	return form.File[receive.FieldName]
}
