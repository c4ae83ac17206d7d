package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/drovo/backend/config"
	"github.com/drovo/backend/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDisk()

	// Always boot the local disk; uploaded images are served from it.
	disks["local"] = newLocalDisk()

	// Boot the S3 disk only if a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: configured disk unavailable, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// SetDefault switches the default disk (used by tests).
func SetDefault(name string) {
	managerMu.Lock()
	defaultDisk = name
	managerMu.Unlock()
}

// LocalRoot returns the absolute root of the local disk, for the static
// file server. Falls back to the configured root when the manager has not
// been booted (route:list builds the router without Connect).
func LocalRoot() string {
	managerMu.RLock()
	d, ok := disks["local"]
	managerMu.RUnlock()
	if ld, isLocal := d.(*localDisk); ok && isLocal {
		return ld.Root()
	}
	return config.StorageLocalRoot()
}

func defaultD() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Default-disk helpers.

func Put(path string, content []byte) error    { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }
func Get(path string) ([]byte, error)          { return defaultD().Get(path) }
func Exists(path string) bool                  { return defaultD().Exists(path) }
func Delete(path string) error                 { return defaultD().Delete(path) }
func URL(path string) string                   { return defaultD().URL(path) }
