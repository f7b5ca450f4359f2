package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *FSStore) {
	t.Helper()
	store, err := NewFSStore(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)
	return NewService(store), store
}

func TestUpload_StoresUnderProductsWithExtension(t *testing.T) {
	svc, store := newTestService(t)

	url, err := svc.Upload(context.Background(), "pizza.jpg", []byte("fake image"), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/media/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	name, ok := objectName(url)
	require.True(t, ok)
	data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, "fake image", string(data))
}

func TestUpload_EmptyFileRejected(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Upload(context.Background(), "pizza.jpg", nil, "image/jpeg")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRemoveURL_DeletesStoredImage(t *testing.T) {
	svc, store := newTestService(t)

	url, err := svc.Upload(context.Background(), "pizza.png", []byte("fake image"), "image/png")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveURL(context.Background(), url))

	name, _ := objectName(url)
	_, statErr := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(name)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemoveURL_ExternalURLIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	assert.NoError(t, svc.RemoveURL(context.Background(), "https://example.com/images/other.jpg"))
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"http://localhost:8080/media/products/abc.jpg", "products/abc.jpg", true},
		{"https://cdn.example.com/products/xyz.png", "products/xyz.png", true},
		{"https://example.com/images/other.jpg", "", false},
		{"http://localhost:8080/media/products/../secret", "", false},
	}

	for _, tt := range tests {
		got, ok := objectName(tt.url)
		assert.Equal(t, tt.wantOK, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}
