package managers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// StoreMgr is the interface for the image storage collaborator. Save returns
// an opaque reference to the stored file; Remove releases it again, both on a
// failed create and after a committed delete.
type StoreMgr interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(reference string) error
}

// FileStoreManager stores uploaded images on the local filesystem. The stored
// reference doubles as the URL path the router serves the files under.
type FileStoreManager struct {
	uploadDir string
}

const defaultUploadDir = "uploads/images"

// NewFileStoreManager creates a FileStoreManager rooted at the given directory,
// creating it if necessary. An empty directory falls back to uploads/images.
func NewFileStoreManager(uploadDir string) (StoreMgr, error) {
	log.Info("Initializing file store manager")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	return &FileStoreManager{uploadDir: uploadDir}, nil
}

// Save persists the uploaded file under a fresh name and returns its reference.
func (fsm *FileStoreManager) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	reference := filepath.Join(fsm.uploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	dst, err := os.Create(reference)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = dst.ReadFrom(src); err != nil {
		// Don't leave a truncated file behind
		_ = os.Remove(reference)
		return "", err
	}

	return reference, nil
}

// Remove deletes the stored file behind the reference.
func (fsm *FileStoreManager) Remove(reference string) error {
	return os.Remove(reference)
}

// UploadDir returns the directory the manager stores files in, for static serving.
func (fsm *FileStoreManager) UploadDir() string {
	return fsm.uploadDir
}
