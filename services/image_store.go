package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const MaxImageBytes = 10 << 20

type StoredImage struct {
	URL      string
	PublicID string
}

// ImageStore persists decoded images and returns a URL the front-end can load.
type ImageStore interface {
	Save(ctx context.Context, data []byte, folder string) (StoredImage, error)
	Remove(ctx context.Context, publicID string) error
}

// DecodeDataURL accepts "data:image/...;base64,<payload>" or a bare base64 payload.
func DecodeDataURL(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, "base64,")
		if idx < 0 || !strings.HasPrefix(raw, "data:image/") {
			return nil, ErrInvalidImage
		}
		raw = raw[idx+len("base64,"):]
	}
	if raw == "" {
		return nil, ErrInvalidImage
	}
	// reject before allocating the decoded buffer
	if base64.StdEncoding.DecodedLen(len(raw)) > MaxImageBytes+3 {
		return nil, ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return data, nil
}

func imageExt(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	return "jpg"
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// LocalStore writes images under Dir, served by the router at /uploads.
type LocalStore struct {
	Dir string
	now func() time.Time
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir, now: time.Now}
}

func (s *LocalStore) Save(_ context.Context, data []byte, folder string) (StoredImage, error) {
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return StoredImage{}, fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d.%s", s.now().UnixNano(), imageExt(data))
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return StoredImage{}, fmt.Errorf("write file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(folder, filename))
	return StoredImage{URL: "/uploads/" + rel, PublicID: rel}, nil
}

func (s *LocalStore) Remove(_ context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(publicID)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CloudinaryStore uploads images to Cloudinary under a lodge folder.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	Prefix string
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &CloudinaryStore{cld: cld, Prefix: "lodge"}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, data []byte, folder string) (StoredImage, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   s.Prefix + "/" + folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return StoredImage{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	return StoredImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Remove(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// NewImageStore picks Cloudinary when configured, otherwise the local uploads directory.
func NewImageStore(cloudinaryURL, uploadDir string) (ImageStore, error) {
	if cloudinaryURL == "" {
		return NewLocalStore(uploadDir), nil
	}
	return NewCloudinaryStore(cloudinaryURL)
}
