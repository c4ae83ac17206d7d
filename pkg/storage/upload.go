package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes caps a single uploaded image at 5 MB.
const MaxUploadBytes = 5 << 20

// ErrNoFile is returned when the multipart form carries no file for the field.
var ErrNoFile = errors.New("storage: no file uploaded")

// ErrNotImage is returned when the uploaded file is not an image.
var ErrNotImage = errors.New("storage: only image files are allowed")

// SaveUpload reads the named multipart file field, validates it is an image
// within the size limit, stores it under dir on the default disk with a
// collision-free name, and returns the stored filename (dir-relative).
func SaveUpload(r *http.Request, field, dir string) (string, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			return "", fmt.Errorf("storage: parse form: %w", err)
		}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", ErrNoFile
	}
	defer file.Close()

	if err := checkImage(header); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s-%s%s", field, uuid.NewString(), ext)

	if err := PutStream(path.Join(dir, name), file); err != nil {
		return "", err
	}
	return name, nil
}

func checkImage(header *multipart.FileHeader) error {
	if header.Size > MaxUploadBytes {
		return fmt.Errorf("storage: file too large (max %d bytes)", MaxUploadBytes)
	}
	ct := header.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return ErrNotImage
	}
	return nil
}
