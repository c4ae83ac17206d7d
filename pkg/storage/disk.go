// Package storage abstracts where uploaded images live.
//
// Two drivers are available:
//   - "local" — local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in internal/server, then:
//
//	storage.Put("foods/"+name, data)
//	storage.Delete("foods/"+old)
//	url := storage.URL("foods/" + name)
package storage

import "io"

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
