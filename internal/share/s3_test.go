package share

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/common"
)

type fakeS3 struct {
	putErr     error
	presignErr error
	objects    map[string][]byte
	types      map[string]string
	expires    time.Duration
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	f.types[*in.Key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.presignErr != nil {
		return nil, f.presignErr
	}
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + *in.Bucket + ".s3.amazonaws.com/" + *in.Key + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func TestUpload(t *testing.T) {
	fake := newFakeS3()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	u := newS3Uploader(fake, fake, Config{
		Bucket:  "easystyle-shares",
		LinkTTL: time.Hour,
		Now:     func() time.Time { return now },
		Logger:  common.DiscardLogger(),
	})

	link, err := u.Upload(context.Background(), "shares/h1.png", []byte("png"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, []byte("png"), fake.objects["shares/h1.png"])
	assert.Equal(t, "image/png", fake.types["shares/h1.png"])
	assert.Equal(t, time.Hour, fake.expires)
	assert.Equal(t, "shares/h1.png", link.Key)
	assert.Equal(t, now.Add(time.Hour), link.ExpiresAt)
	assert.Contains(t, link.URL, "easystyle-shares.s3.amazonaws.com/shares/h1.png")
}

func TestUploadDefaultsTTL(t *testing.T) {
	fake := newFakeS3()
	u := newS3Uploader(fake, fake, Config{Bucket: "b"})

	_, err := u.Upload(context.Background(), "k", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, DefaultLinkTTL, fake.expires)
}

func TestUploadErrors(t *testing.T) {
	fake := newFakeS3()
	u := newS3Uploader(fake, fake, Config{Bucket: "b"})

	_, err := u.Upload(context.Background(), "k", nil, "image/png")
	assert.ErrorContains(t, err, "empty object")

	fake.putErr = errors.New("access denied")
	_, err = u.Upload(context.Background(), "k", []byte("x"), "image/png")
	assert.ErrorContains(t, err, "access denied")

	fake.putErr = nil
	fake.presignErr = errors.New("no credentials")
	_, err = u.Upload(context.Background(), "k", []byte("x"), "image/png")
	assert.ErrorContains(t, err, "failed to presign")
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), Config{})
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
