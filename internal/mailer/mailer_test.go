package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formintake/intake-api/internal/types"
)

type fakeFetcher struct {
	content map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (io.ReadCloser, error) {
	content, ok := f.content[url]
	if !ok {
		return nil, fmt.Errorf("no content for %s", url)
	}

	return io.NopCloser(strings.NewReader(content)), nil
}

var form = types.IntakeForm{
	Name:    "Ann",
	Age:     "30",
	Message: "hi",
	Email:   "a@x.com",
}

func TestComposeBody(t *testing.T) {
	body := composeBody(form)

	assert.Contains(t, body, "Name: Ann")
	assert.Contains(t, body, "Age: 30")
	assert.Contains(t, body, "Message: hi")
	assert.Contains(t, body, "Email: a@x.com")
}

func TestAttachmentFilename(t *testing.T) {
	name := AttachmentFilename("http://localhost:3006/uploads/images-1-cat.png")
	assert.Equal(t, "images-1-cat.png", name)
}

func TestCollectAttachments(t *testing.T) {
	ctx := context.Background()

	refA := "http://localhost:3006/uploads/images-1-a.png"
	refB := "http://localhost:3006/uploads/images-1-b.png"
	fetcher := &fakeFetcher{content: map[string]string{
		refA: "bytes-a",
		refB: "bytes-b",
	}}
	m := NewResendMailer("", "forms@example.com", fetcher)

	t.Run("ReadsEveryReference", func(t *testing.T) {
		attachments, err := m.collectAttachments(ctx, []string{refA, refB})
		require.NoError(t, err, "failed to collect attachments")

		require.Len(t, attachments, 2)
		assert.Equal(t, "images-1-a.png", attachments[0].Filename)
		assert.Equal(t, []byte("bytes-a"), attachments[0].Content)
		assert.Equal(t, "images-1-b.png", attachments[1].Filename)
		assert.Equal(t, []byte("bytes-b"), attachments[1].Content)
	})

	t.Run("UnreadableReferenceFails", func(t *testing.T) {
		_, err := m.collectAttachments(ctx, []string{refA, "http://localhost:3006/uploads/missing.png"})
		require.Error(t, err, "an unreadable attachment should fail the notification")
	})
}

func TestNotifyDevMode(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string]string{}}
	m := NewResendMailer("", "forms@example.com", fetcher)

	// no API key configured: the send is logged, not made, and attachments
	// are never fetched
	err := m.Notify(context.Background(), form, []string{"http://localhost:3006/uploads/missing.png"})
	require.NoError(t, err)
}
