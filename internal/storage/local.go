package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"jobportal/internal/domain"

	"github.com/google/uuid"
)

var (
	cvExtensions      = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
	pictureExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

// LocalStore writes uploads under a base directory and returns URL paths the
// HTTP layer serves as static files.
type LocalStore struct {
	baseDir string
	maxSize int64
}

func NewLocalStore(baseDir string, maxSize int64) (*LocalStore, error) {
	for _, sub := range []string{"cvs", "pictures"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStore{baseDir: baseDir, maxSize: maxSize}, nil
}

func (s *LocalStore) SaveCV(file *multipart.FileHeader) (string, error) {
	return s.save(file, "cvs", cvExtensions)
}

func (s *LocalStore) SavePicture(file *multipart.FileHeader) (string, error) {
	return s.save(file, "pictures", pictureExtensions)
}

func (s *LocalStore) save(file *multipart.FileHeader, subdir string, allowed map[string]bool) (string, error) {
	if file.Size > s.maxSize {
		return "", domain.NewValidationError(map[string]string{
			"file": fmt.Sprintf("must not exceed %d MB", s.maxSize>>20),
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", domain.NewValidationError(map[string]string{
			"file": fmt.Sprintf("unsupported file type %q", ext),
		})
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + ext
	path := filepath.Join(s.baseDir, subdir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return "/uploads/" + subdir + "/" + name, nil
}

// Remove deletes a previously stored file given its URL path. Unknown paths
// are ignored.
func (s *LocalStore) Remove(urlPath string) error {
	rel, ok := strings.CutPrefix(urlPath, "/uploads/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) BaseDir() string {
	return s.baseDir
}
