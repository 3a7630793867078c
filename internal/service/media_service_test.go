package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"Reddit_MVP/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaFixture() (*MediaService, *fakeObjectStore) {
	store := newFakeObjectStore()
	return NewMediaService(store, pkg.NopEventSink{}), store
}

func TestUploadCanonicalExtensionWins(t *testing.T) {
	svc, _ := newMediaFixture()

	// 文件名说 .txt，content-type 说 png：扩展名跟 content-type 走
	result, err := svc.Upload(context.Background(), 7, "photo.txt", "image/png", bytes.NewReader([]byte("png-bytes")), 9)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "media/u7/"), "key %q should be namespaced by uploader", result.Key)
	assert.True(t, strings.HasSuffix(result.Key, ".png"), "key %q should carry the canonical extension", result.Key)
	assert.False(t, strings.HasSuffix(result.Key, ".txt"))
	assert.Equal(t, "image/png", result.ContentType)
	assert.EqualValues(t, 3600, result.ExpiresSeconds)
	assert.NotEmpty(t, result.URL)
}

func TestUploadRejectsOutsideAllowList(t *testing.T) {
	svc, store := newMediaFixture()

	_, err := svc.Upload(context.Background(), 7, "doc.pdf", "application/pdf", bytes.NewReader([]byte("%PDF")), 4)
	require.Error(t, err)
	assert.Equal(t, pkg.KindUnsupportedMedia, pkg.KindOf(err))
	// 拒绝发生在任何写入之前
	assert.Zero(t, store.count())
}

func TestUploadAllowListCoversVideoTypes(t *testing.T) {
	svc, _ := newMediaFixture()

	for contentType, ext := range map[string]string{
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/ogg":       ".ogv",
		"video/quicktime": ".mov",
	} {
		result, err := svc.Upload(context.Background(), 1, "clip", contentType, bytes.NewReader([]byte("v")), 1)
		require.NoError(t, err, contentType)
		assert.True(t, strings.HasSuffix(result.Key, ext), "%s → %s", contentType, result.Key)
	}
}

func TestUploadKeysAreUnique(t *testing.T) {
	svc, _ := newMediaFixture()

	a, err := svc.Upload(context.Background(), 1, "a.png", "image/png", bytes.NewReader([]byte("a")), 1)
	require.NoError(t, err)
	b, err := svc.Upload(context.Background(), 1, "a.png", "image/png", bytes.NewReader([]byte("b")), 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestPresignMissingKey(t *testing.T) {
	svc, _ := newMediaFixture()

	_, _, err := svc.Presign(context.Background(), "media/u1/nope.png")
	require.Error(t, err)
	assert.Equal(t, pkg.KindNotFound, pkg.KindOf(err))
}

func TestPresignReturnsStoredContentType(t *testing.T) {
	svc, _ := newMediaFixture()

	uploaded, err := svc.Upload(context.Background(), 3, "pic.gif", "image/gif", bytes.NewReader([]byte("gif")), 3)
	require.NoError(t, err)

	url, info, err := svc.Presign(context.Background(), uploaded.Key)
	require.NoError(t, err)
	assert.Contains(t, url, uploaded.Key)
	assert.Equal(t, "image/gif", info.ContentType)
}

func TestServeStreamsIdenticalBytes(t *testing.T) {
	svc, _ := newMediaFixture()
	payload := []byte("the original bytes")

	uploaded, err := svc.Upload(context.Background(), 2, "x.webp", "image/webp", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	rc, info, err := svc.Serve(context.Background(), uploaded.Key)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "image/webp", info.ContentType)
	assert.EqualValues(t, len(payload), info.Size)
}

func TestServeMissingKey(t *testing.T) {
	svc, _ := newMediaFixture()

	_, _, err := svc.Serve(context.Background(), "media/u9/gone.mp4")
	require.Error(t, err)
	assert.Equal(t, pkg.KindNotFound, pkg.KindOf(err))
}
