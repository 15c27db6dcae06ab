package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"brightrec/internal/domain"
)

const (
	photosDir        = "photos"
	defaultImageExt  = ".jpg"
	defaultImageMIME = "image/jpeg"
)

// ErrEmptyImage is returned when SaveImage is given no image data.
var ErrEmptyImage = errors.New("empty image")

// ImageFileStore caches profile, connection and group photos on disk.
//
// Images travel through the rest of the system as base64 text, either bare
// or as a data URL; on disk they are raw bytes named after their owner with
// an extension chosen from the detected content type.
type ImageFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewImageFileStore returns an ImageFileStore rooted at dir/photos.
func NewImageFileStore(dir string) *ImageFileStore {
	return &ImageFileStore{dir: filepath.Join(dir, photosDir)}
}

// CreateImageDirectory makes sure the photo directory exists.
func (s *ImageFileStore) CreateImageDirectory() error {
	return os.MkdirAll(s.dir, 0o700)
}

// SaveImage decodes base64Image and stores it under imageName, returning the
// file name to reference it by.
func (s *ImageFileStore) SaveImage(imageName string, base64Image string) (string, error) {
	if imageName == "" {
		return "", errors.New("save image: empty image name")
	}
	raw, err := decodeImage(base64Image)
	if err != nil {
		return "", fmt.Errorf("save image %q: %w", imageName, err)
	}

	ext := mimetype.Detect(raw).Extension()
	if ext == "" {
		ext = defaultImageExt
	}
	filename := safeName(imageName) + ext

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFile(filepath.Join(s.dir, filename), raw, 0o600); err != nil {
		return "", err
	}
	return filename, nil
}

// RetrieveImage returns the stored image as a base64 data URL.
func (s *ImageFileStore) RetrieveImage(filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filename == "" || filepath.Base(filename) != filename {
		return "", fmt.Errorf("retrieve image: invalid file name %q", filename)
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	mime, _, _ := strings.Cut(mimetype.Detect(raw).String(), ";")
	if mime == "" || mime == "application/octet-stream" {
		mime = defaultImageMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// decodeImage accepts bare base64 or a "data:<mime>;base64," URL.
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, errors.New("malformed data url")
		}
		s = payload
	}
	if s == "" {
		return nil, ErrEmptyImage
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyImage
	}
	return raw, nil
}

func safeName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(name)
}

// Compile-time assertion that ImageFileStore implements domain.ImageStore.
var _ domain.ImageStore = (*ImageFileStore)(nil)
