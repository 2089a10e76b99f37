package history

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/share"
	"github.com/Veraticus/easy-style/internal/testutil"
)

type fakeUploader struct {
	err         error
	key         string
	contentType string
	data        []byte
}

func (f *fakeUploader) Upload(_ context.Context, key string, data []byte, contentType string) (share.Link, error) {
	if f.err != nil {
		return share.Link{}, f.err
	}
	f.key, f.data, f.contentType = key, data, contentType
	return share.Link{URL: "https://cdn.example/" + key, Key: key}, nil
}

var (
	kim  = account.Principal{Email: "kim@example.com"}
	park = account.Principal{Email: "park@example.com"}
)

// pngBytes starts with the PNG signature so content sniffing recognises it.
var pngBytes = []byte("\x89PNG\r\n\x1a\n0000")

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	store := testutil.SetupTestDB(t)
	ids := 0
	s := NewService(store, append([]Option{
		WithLogger(common.DiscardLogger()),
		WithClock(testutil.FixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))),
	}, opts...)...)
	s.newID = func() string {
		ids++
		return []string{"h1", "h2", "h3", "h4"}[ids-1]
	}
	return s
}

func styledResult() model.StyleResult {
	r := *testutil.SampleResult()
	r.ImageBase64 = base64.StdEncoding.EncodeToString(pngBytes)
	return r
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	photo := model.Image{Data: []byte("jpeg"), MIMEType: "image/jpeg"}

	saved, err := s.Save(ctx, kim, "출근룩", photo, styledResult())
	require.NoError(t, err)
	assert.Equal(t, "h1", saved.ID)
	assert.Equal(t, "kim@example.com", saved.UserEmail)
	assert.Equal(t, photo.Encoded(), saved.OriginalImage)
	assert.Equal(t, "깔끔한 오피스 캐주얼", saved.StyledResult.Description)

	_, err = s.Save(ctx, park, "데이트룩", photo, styledResult())
	require.NoError(t, err)

	items, err := s.List(ctx, kim)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "출근룩", items[0].Prompt)
	assert.Equal(t, testutil.SampleProducts(), items[0].Products)

	got, err := s.Get(ctx, kim, "h1")
	require.NoError(t, err)
	assert.Equal(t, styledResult(), got.Result())

	_, err = s.Get(ctx, park, "h1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRequiresLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Save(ctx, account.Principal{}, "p", model.Image{}, styledResult())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, account.MsgLoginRequired, common.UserMessage(err))

	_, err = s.List(ctx, account.Principal{})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestShare(t *testing.T) {
	ctx := context.Background()
	up := &fakeUploader{}
	s := newTestService(t, WithUploader(up))

	_, err := s.Save(ctx, kim, "출근룩", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, styledResult())
	require.NoError(t, err)

	shared, err := s.Share(ctx, kim, "h1")
	require.NoError(t, err)
	assert.Equal(t, "shares/h1.png", up.key)
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, pngBytes, up.data)
	assert.Equal(t, "https://cdn.example/shares/h1.png", shared.Link.URL)
	assert.Equal(t, "AI가 추천해준 제 새로운 스타일을 확인해보세요! - 출근룩", shared.Text)

	_, err = s.Share(ctx, park, "h1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	jpeg := styledResult()
	jpeg.ImageMIMEType = "image/jpeg"
	_, err = s.Save(ctx, kim, "데이트룩", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, jpeg)
	require.NoError(t, err)
	_, err = s.Share(ctx, kim, "h2")
	require.NoError(t, err)
	assert.Equal(t, "shares/h2.jpeg", up.key)
	assert.Equal(t, "image/jpeg", up.contentType)
}

func TestShareFailures(t *testing.T) {
	ctx := context.Background()

	s := newTestService(t)
	_, err := s.Share(ctx, kim, "h1")
	assert.ErrorIs(t, err, common.ErrNotConfigured)

	up := &fakeUploader{err: errors.New("bucket gone")}
	s = newTestService(t, WithUploader(up))
	_, err = s.Save(ctx, kim, "p", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, styledResult())
	require.NoError(t, err)
	_, err = s.Share(ctx, kim, "h1")
	assert.ErrorContains(t, err, "bucket gone")

	broken := styledResult()
	broken.ImageBase64 = "!!!"
	_, err = s.Save(ctx, kim, "p", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, broken)
	require.NoError(t, err)
	_, err = s.Share(ctx, kim, "h2")
	assert.ErrorIs(t, err, model.ErrInvalidImage)
}
