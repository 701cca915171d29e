package audit

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func captureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = w

	fn()

	if err := w.Close(); err != nil {
		return "", err
	}
	os.Stdout = orig

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, r); err != nil {
		return "", err
	}

	if err := r.Close(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func TestLogFileStored(t *testing.T) {
	ctx := Context{}
	got, err := captureStdout(func() {
		LogFileStored(ctx, "/srv/uploads", "images-1-cat.png", "http://localhost:3006/uploads/images-1-cat.png")
	})
	require.NoError(t, err)

	expect := regexp.MustCompile(
		`{"event":{"store_id":"/srv/uploads","object_name":"images-1-cat.png","reference":"http://localhost:3006/uploads/images-1-cat.png"},"submission_id":null,"log_context":"audit","version":"\d\.\d\.\d","disposition":"neutral","event_type":"file_stored","timestamp":\d+}`,
	)
	assert.Regexp(t, expect, got)
}

func TestLogSubmissionStored(t *testing.T) {
	ctx := Context{SubmissionID: ptr("sub")}
	got, err := captureStdout(func() {
		LogSubmissionStored(ctx, "Ann", "a@x.com", 2)
	})
	require.NoError(t, err)

	expect := regexp.MustCompile(
		`{"event":{"name":"Ann","email":"a@x.com","image_count":2},"submission_id":"sub","log_context":"audit","version":"\d\.\d\.\d","disposition":"good","event_type":"submission_stored","timestamp":\d+}`,
	)
	assert.Regexp(t, expect, got)
}

func TestLogNotificationSent(t *testing.T) {
	ctx := Context{SubmissionID: ptr("sub")}
	got, err := captureStdout(func() {
		LogNotificationSent(ctx, "a@x.com")
	})
	require.NoError(t, err)

	expect := regexp.MustCompile(
		`{"event":{"recipient":"a@x.com"},"submission_id":"sub","log_context":"audit","version":"\d\.\d\.\d","disposition":"good","event_type":"notification_sent","timestamp":\d+}`,
	)
	assert.Regexp(t, expect, got)
}

func TestLogNotificationFailed(t *testing.T) {
	ctx := Context{SubmissionID: ptr("sub")}
	got, err := captureStdout(func() {
		LogNotificationFailed(ctx, "a@x.com", "relay rejected the send")
	})
	require.NoError(t, err)

	expect := regexp.MustCompile(
		`{"event":{"recipient":"a@x.com","reason":"relay rejected the send"},"submission_id":"sub","log_context":"audit","version":"\d\.\d\.\d","disposition":"bad","event_type":"notification_failed","timestamp":\d+}`,
	)
	assert.Regexp(t, expect, got)
}
