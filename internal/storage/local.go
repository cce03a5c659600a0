// Package storage persists uploaded attachment files on the local disk
// and hands out the URL paths stored on tickets.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploads under a single directory served at /uploads.
// Files get uuid names so uploads can never collide or traverse paths.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the upload directory exists.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *LocalStore) Dir() string { return s.dir }

// Save streams src to a new uuid-named file, keeping the original
// extension, and returns the public URL path ("/uploads/<name>").
func (s *LocalStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return "/uploads/" + name, nil
}

// Remove deletes the file behind a URL path previously returned by Save.
// Unknown paths are ignored.
func (s *LocalStore) Remove(urlPath string) error {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
