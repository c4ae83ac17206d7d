package storage_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/drovo/backend/pkg/storage"
)

type memDisk struct {
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.files[path] = b
	return nil
}

func (d *memDisk) Get(path string) ([]byte, error) {
	b, ok := d.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (d *memDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }

func (d *memDisk) Delete(path string) error {
	delete(d.files, path)
	return nil
}

func (d *memDisk) URL(path string) string { return "/images/" + path }

func useMemDisk(t *testing.T) *memDisk {
	t.Helper()
	d := newMemDisk()
	storage.RegisterDisk("mem", d)
	storage.SetDefault("mem")
	t.Cleanup(func() { storage.SetDefault("local") })
	return d
}

func uploadRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/food/add", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSaveUploadStoresImage(t *testing.T) {
	d := useMemDisk(t)

	req := uploadRequest(t, "image", "samosa.PNG", "image/png", []byte("fake png bytes"))
	name, err := storage.SaveUpload(req, "image", "foods")
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}

	if !strings.HasPrefix(name, "image-") || !strings.HasSuffix(name, ".png") {
		t.Errorf("stored name = %q, want image-<uuid>.png", name)
	}
	if !d.Exists("foods/" + name) {
		t.Errorf("file not stored under foods/: %v", d.files)
	}
}

func TestSaveUploadRejectsNonImage(t *testing.T) {
	useMemDisk(t)

	req := uploadRequest(t, "image", "notes.txt", "text/plain", []byte("just text"))
	_, err := storage.SaveUpload(req, "image", "foods")
	if !errors.Is(err, storage.ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	d := useMemDisk(t)

	big := bytes.Repeat([]byte("x"), storage.MaxUploadBytes+1)
	req := uploadRequest(t, "image", "huge.png", "image/png", big)
	_, err := storage.SaveUpload(req, "image", "foods")
	if err == nil {
		t.Fatal("oversize upload accepted")
	}
	if errors.Is(err, storage.ErrNoFile) || errors.Is(err, storage.ErrNotImage) {
		t.Fatalf("wrong error class for oversize upload: %v", err)
	}
	if len(d.files) != 0 {
		t.Error("oversize upload reached the disk")
	}
}

func TestSaveUploadMissingFile(t *testing.T) {
	useMemDisk(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Samosa"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/food/add", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, err := storage.SaveUpload(req, "image", "foods")
	if !errors.Is(err, storage.ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}
}
