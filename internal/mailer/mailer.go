package mailer

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/resend/resend-go/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/formintake/intake-api/internal/fetch"
	"github.com/formintake/intake-api/internal/logger"
	"github.com/formintake/intake-api/internal/types"
)

var tracer = otel.Tracer(
	"github.com/formintake/intake-api/internal/mailer",
)

const subject = "New User Submitted the Form"

// Notifier sends the submitter a copy of their submission. At-most-once:
// a failed send is reported, never retried, and never rolls anything back.
type Notifier interface {
	Notify(ctx context.Context, form types.IntakeForm, imageRefs []string) error
}

// Ensure ResendMailer implements Notifier interface.
var _ Notifier = (*ResendMailer)(nil)

// ResendMailer delivers through the resend relay identity configured once
// at process start. An empty API key puts it in dev mode: sends are logged
// instead of made.
type ResendMailer struct {
	client  *resend.Client
	fetcher fetch.Fetcher
	from    string
}

func NewResendMailer(apiKey, from string, fetcher fetch.Fetcher) *ResendMailer {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}

	return &ResendMailer{
		client:  client,
		fetcher: fetcher,
		from:    from,
	}
}

func (m *ResendMailer) Notify(
	ctx context.Context,
	form types.IntakeForm,
	imageRefs []string,
) error {
	ctx, span := tracer.Start(ctx, "ResendMailer.Notify", trace.WithAttributes(
		attribute.String("to", form.Email),
		attribute.Int("attachments", len(imageRefs)),
	))
	defer span.End()

	body := composeBody(form)

	if m.client == nil {
		logger.Logger.Info(
			"email sent (dev mode)",
			"to", form.Email,
			"subject", subject,
			"attachments", len(imageRefs),
		)
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "dev mode, send logged")
		return nil
	}

	attachments, err := m.collectAttachments(ctx, imageRefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to collect attachments")
		return err
	}

	params := &resend.SendEmailRequest{
		From:        m.from,
		To:          []string{form.Email},
		Subject:     subject,
		Text:        body,
		Attachments: attachments,
	}

	_, err = m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "relay rejected the send")
		return fmt.Errorf("failed to send notification: %w", err)
	}

	logger.Logger.Info("email sent", "to", form.Email, "attachments", len(imageRefs))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "sent notification")
	return nil
}

// collectAttachments reads every referenced image back through its public
// URL. One unreadable attachment fails the whole notification.
func (m *ResendMailer) collectAttachments(
	ctx context.Context,
	imageRefs []string,
) ([]*resend.Attachment, error) {
	attachments := make([]*resend.Attachment, 0, len(imageRefs))
	for _, ref := range imageRefs {
		content, err := m.fetchOne(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %q: %w", ref, err)
		}

		attachments = append(attachments, &resend.Attachment{
			Filename: AttachmentFilename(ref),
			Content:  content,
		})
	}

	return attachments, nil
}

func (m *ResendMailer) fetchOne(ctx context.Context, ref string) ([]byte, error) {
	body, err := m.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

// AttachmentFilename recovers the stored name from an attachment reference.
func AttachmentFilename(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return path.Base(ref)
	}

	return path.Base(parsed.Path)
}

func composeBody(form types.IntakeForm) string {
	return fmt.Sprintf(
		"A new user has submitted the form:\nName: %s\nAge: %s\nMessage: %s\nEmail: %s\n",
		form.Name,
		form.Age,
		form.Message,
		form.Email,
	)
}
