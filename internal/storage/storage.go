// Package storage abstracts the blob store that holds attachment and
// profile-image binaries. The rest of the system only keys files by the
// returned storage path.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore writes uploaded files and returns their storage path.
type BlobStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// LocalStore writes files under a directory served statically by the app.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the uploads directory exists.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save stores the file under a collision-free name and returns the path
// relative to the uploads root.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + sanitizeExt(file.Filename)
	dest := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dest)
		return "", err
	}
	return name, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
