package media

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"
)

// BlobStore is the product image store. Put returns the public URL the
// stored object is served from.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
}

var ErrEmptyFile = errors.New("no file provided")

const objectPrefix = "products"

// Service handles product image uploads and removals on top of a blob
// store.
type Service struct {
	store BlobStore
}

func NewService(store BlobStore) *Service {
	return &Service{store: store}
}

// Upload stores the image under a random name that keeps the original
// extension, mirroring how product images were laid out before.
func (s *Service) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	name := fmt.Sprintf("%s/%s%s", objectPrefix, randomName(), path.Ext(filename))
	url, err := s.store.Put(ctx, name, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// RemoveURL deletes a stored image given its public URL. URLs pointing
// elsewhere (external images) are left alone.
func (s *Service) RemoveURL(ctx context.Context, url string) error {
	name, ok := objectName(url)
	if !ok {
		return nil
	}
	if err := s.store.Remove(ctx, name); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// objectName extracts "products/<file>" from a public URL.
func objectName(url string) (string, bool) {
	idx := strings.Index(url, objectPrefix+"/")
	if idx < 0 {
		return "", false
	}
	name := url[idx:]
	if strings.ContainsAny(name, "?#") || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomName() string {
	b := make([]byte, 13)
	for i := range b {
		b[i] = nameAlphabet[rand.Intn(len(nameAlphabet))]
	}
	return string(b)
}
