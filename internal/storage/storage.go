package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadResult identifies an uploaded asset. PublicID is what Destroy takes;
// SecureURL is the public https location.
type UploadResult struct {
	PublicID  string
	SecureURL string
}

// ObjectStorage is the object-storage collaborator. Implementations upload a
// local file and delete assets by public id.
type ObjectStorage interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// SaveTemp copies an uploaded stream into dir under a random name and returns
// the file path. Callers are responsible for removing the file.
func SaveTemp(dir string, r io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
