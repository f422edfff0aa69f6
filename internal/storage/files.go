package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBadExtension = errors.New("file extension not allowed")
	ErrTooLarge     = errors.New("file exceeds size limit")
)

var allowedExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true,
	".pdf": true, ".doc": true, ".docx": true,
	".csv": true, ".xlsx": true,
}

// Disk stores uploads under Dir with uuid-based names; the original name
// lives only in the DB registration.
type Disk struct {
	Dir      string
	MaxBytes int64
}

func NewDisk(dir string, maxBytes int64) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{Dir: dir, MaxBytes: maxBytes}, nil
}

// Save validates extension and size, then writes the upload. Returns the
// stored (disk) name.
func (d *Disk) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrBadExtension, ext)
	}
	if d.MaxBytes > 0 && fh.Size > d.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	storedName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(d.Dir, storedName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return storedName, nil
}

func (d *Disk) Path(storedName string) string {
	return filepath.Join(d.Dir, filepath.Base(storedName))
}

// Remove is tolerant of already-missing files; delete cascades call it for
// every registered document.
func (d *Disk) Remove(storedName string) error {
	err := os.Remove(d.Path(storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
