package platform

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

func stubClipboard(t *testing.T, unsupported bool, write func(string) error) {
	t.Helper()
	origWrite, origUnsupported := clipboardWriteAll, clipboardUnsupported
	clipboardWriteAll = write
	clipboardUnsupported = func() bool { return unsupported }
	t.Cleanup(func() {
		clipboardWriteAll, clipboardUnsupported = origWrite, origUnsupported
	})
}

func TestSystemClipboard_Writes(t *testing.T) {
	var got string
	stubClipboard(t, false, func(text string) error {
		got = text
		return nil
	})

	c := SystemClipboard{}
	require.True(t, c.Available())
	require.NoError(t, c.WriteAll(`{"id":"a"}`))
	require.Equal(t, `{"id":"a"}`, got)
}

func TestSystemClipboard_Unsupported(t *testing.T) {
	called := false
	stubClipboard(t, true, func(string) error {
		called = true
		return nil
	})

	c := SystemClipboard{}
	require.False(t, c.Available())
	require.ErrorIs(t, c.WriteAll("x"), ErrClipboardUnavailable)
	require.False(t, called)
}

func TestNoopClipboard(t *testing.T) {
	require.False(t, NoopClipboard{}.Available())
	require.ErrorIs(t, NoopClipboard{}.WriteAll("x"), ErrClipboardUnavailable)
}

func TestFileDelivery(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := NewFileDelivery(dir)

	path, err := d.Deliver(context.Background(), "granite_slabs_export.csv", "text/csv", []byte("id\n"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "granite_slabs_export.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "id\n", string(data))
}

func TestFileDelivery_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := NewFileDelivery(dir).Deliver(context.Background(), "../escape.csv", "text/csv", nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "escape.csv"), path)
}

func TestWriterDelivery(t *testing.T) {
	var buf bytes.Buffer
	where, err := WriterDelivery{W: &buf}.Deliver(context.Background(), "out.csv", "text/csv", []byte("a,b"))
	require.NoError(t, err)
	require.Equal(t, "out.csv", where)
	require.Equal(t, "a,b", buf.String())
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Delivery(t *testing.T) {
	fake := &fakePutter{}
	d := &S3Delivery{client: fake, bucket: "stock", prefix: "exports/"}

	where, err := d.Deliver(context.Background(), "granite_slabs_export.csv", "text/csv", []byte("id"))
	require.NoError(t, err)
	require.Equal(t, "s3://stock/exports/granite_slabs_export.csv", where)
	require.Equal(t, "stock", *fake.input.Bucket)
	require.Equal(t, "exports/granite_slabs_export.csv", *fake.input.Key)
	require.Equal(t, "text/csv", *fake.input.ContentType)
	require.Equal(t, "id", string(fake.body))
}

func TestS3Delivery_Error(t *testing.T) {
	d := &S3Delivery{client: &fakePutter{err: errors.New("denied")}, bucket: "stock"}
	_, err := d.Deliver(context.Background(), "x.csv", "text/csv", nil)
	require.ErrorContains(t, err, "denied")
}

func TestNewS3Delivery_RequiresBucket(t *testing.T) {
	_, err := NewS3Delivery(context.Background(), S3Config{})
	require.Error(t, err)
}

func TestNotifiers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterNotifier(&buf)
	w.Notify("Import complete")
	require.Equal(t, "Import complete\n", buf.String())

	r := &RecordingNotifier{}
	r.Notify("a")
	r.Notify("b")
	require.Equal(t, []string{"a", "b"}, r.Messages())

	LogNotifier{}.Notify("ignored")
}
