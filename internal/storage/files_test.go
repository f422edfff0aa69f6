package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndPath(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	stored, err := disk.Save(makeFileHeader(t, "contacts.csv", []byte("Name,Phone\nAda,555\n")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(stored, ".csv") {
		t.Fatalf("stored name should keep extension, got %q", stored)
	}
	if stored == "contacts.csv" {
		t.Fatal("stored name should not reuse the original filename")
	}

	data, err := os.ReadFile(disk.Path(stored))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "Name,Phone\nAda,555\n" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveRejectsExtension(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	_, err = disk.Save(makeFileHeader(t, "payload.exe", []byte("nope")))
	if !errors.Is(err, ErrBadExtension) {
		t.Fatalf("expected ErrBadExtension, got %v", err)
	}
}

func TestSaveRejectsOversize(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	_, err = disk.Save(makeFileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 64)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestPathStripsTraversal(t *testing.T) {
	disk := &Disk{Dir: "/srv/uploads"}
	got := disk.Path("../../etc/passwd")
	if got != filepath.Join("/srv/uploads", "passwd") {
		t.Fatalf("path traversal not neutralized: %q", got)
	}
}

func TestRemoveMissingFile(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}
	if err := disk.Remove("never-existed.pdf"); err != nil {
		t.Fatalf("remove of missing file should be a no-op, got %v", err)
	}
}
