package receive_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formintake/intake-api/internal/receive"
)

type memStore struct {
	objects map[string][]byte
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Upload(_ context.Context, reader io.Reader, _ int64, name string) error {
	if s.failOn != "" && name == s.failOn {
		return fmt.Errorf("store rejected %s", name)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.objects[name] = data
	return nil
}

func (s *memStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := s.objects[name]
	return ok, nil
}

func (s *memStore) StoreIdentifier(_ context.Context) (string, error) {
	return "mem", nil
}

func formFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, name := range names {
		part, err := writer.CreateFormFile(receive.FieldName, name)
		require.NoError(t, err, "failed to create form file")
		_, err = fmt.Fprintf(part, "content-%d", i)
		require.NoError(t, err, "failed to write form file")
	}
	require.NoError(t, writer.Close(), "failed to close multipart writer")

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err, "failed to parse multipart form")

	return form.File[receive.FieldName]
}

func TestStoredName(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	t.Run("Shape", func(t *testing.T) {
		name := receive.StoredName("images", at, "cat.png")
		assert.Equal(t, "images-1700000000000-cat.png", name)
	})

	t.Run("SpacesBecomeUnderscores", func(t *testing.T) {
		name := receive.StoredName("images", at, "my holiday photo.png")
		assert.Equal(t, "images-1700000000000-my_holiday_photo.png", name)
	})

	t.Run("DistinctOriginalsStayDistinct", func(t *testing.T) {
		a := receive.StoredName("images", at, "a.png")
		b := receive.StoredName("images", at, "b.png")
		assert.NotEqual(t, a, b, "different filenames in one request must not collide")
	})
}

func TestReceive(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1700000000000)

	t.Run("StoresAndReferencesInOrder", func(t *testing.T) {
		store := newMemStore()
		receiver := receive.New(store, "")

		refs, err := receiver.Receive(ctx, formFiles(t, "a.png", "b.png"), at, "http", "localhost:3006")
		require.NoError(t, err, "failed to receive files")

		require.Len(t, refs, 2)
		assert.Equal(t, "http://localhost:3006/uploads/images-1700000000000-a.png", refs[0])
		assert.Equal(t, "http://localhost:3006/uploads/images-1700000000000-b.png", refs[1])

		assert.Equal(t, []byte("content-0"), store.objects["images-1700000000000-a.png"])
		assert.Equal(t, []byte("content-1"), store.objects["images-1700000000000-b.png"])
	})

	t.Run("PublicBaseOverride", func(t *testing.T) {
		store := newMemStore()
		receiver := receive.New(store, "https://forms.example.com/")

		refs, err := receiver.Receive(ctx, formFiles(t, "a.png"), at, "http", "localhost:3006")
		require.NoError(t, err, "failed to receive files")

		require.Len(t, refs, 1)
		assert.Equal(t, "https://forms.example.com/uploads/images-1700000000000-a.png", refs[0])
	})

	t.Run("NoFiles", func(t *testing.T) {
		store := newMemStore()
		receiver := receive.New(store, "")

		refs, err := receiver.Receive(ctx, nil, at, "http", "localhost:3006")
		require.NoError(t, err, "zero files is not a receiver error")
		assert.Empty(t, refs)
	})

	t.Run("TooManyFiles", func(t *testing.T) {
		store := newMemStore()
		receiver := receive.New(store, "")

		files := formFiles(t, "a.png", "b.png", "c.png", "d.png", "e.png", "f.png")
		_, err := receiver.Receive(ctx, files, at, "http", "localhost:3006")
		require.ErrorIs(t, err, receive.ErrTooManyFiles)
	})

	t.Run("StoreFailureFailsTheRequest", func(t *testing.T) {
		store := newMemStore()
		store.failOn = "images-1700000000000-b.png"
		receiver := receive.New(store, "")

		_, err := receiver.Receive(ctx, formFiles(t, "a.png", "b.png"), at, "http", "localhost:3006")
		require.Error(t, err, "a failed write should fail the request")

		// the file written before the failure stays behind, by design
		exists, err := store.Exists(ctx, "images-1700000000000-a.png")
		require.NoError(t, err)
		assert.True(t, exists, "earlier file is not cleaned up")
	})
}
