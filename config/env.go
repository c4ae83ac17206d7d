// Package config exposes the application's environment-driven configuration.
//
// Values come from, in order of precedence: process environment, a .env file
// in the working directory, and the built-in defaults below.
package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort      = "4000"
	defaultAppEnv       = "local"
	defaultMongoURI     = "mongodb://127.0.0.1:27017"
	defaultMongoDB      = "drovo"
	defaultRedisAddr    = ""
	defaultJWTSecret    = "change-me-in-production"
	defaultStorageDisk  = "local"
	defaultStorageRoot  = "uploads"
	defaultStorageURL   = "http://localhost:4000/images"
	defaultGatewayURL   = "https://api.razorpay.com"
	defaultMailHost     = "smtp.gmail.com"
	defaultMailPort     = "587"
	defaultMailFromName = "Drovo"
)

var (
	loadOnce sync.Once

	mu     sync.RWMutex
	values = map[string]string{}
)

// Load reads the .env file once. Missing files are fine; the environment and
// defaults still apply.
func Load() error {
	loadOnce.Do(func() {
		env, err := godotenv.Read(".env")
		if err != nil {
			return
		}
		mu.Lock()
		for k, v := range env {
			values[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}
		mu.Unlock()
	})
	return nil
}

// Get reads a config key with a fallback. Process env wins over .env.
func Get(key, fallback string) string {
	_ = Load()

	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	mu.RLock()
	defer mu.RUnlock()
	if v := values[key]; v != "" {
		return v
	}
	return fallback
}

func AppPort() string { return Get("APP_PORT", defaultAppPort) }
func AppEnv() string  { return Get("APP_ENV", defaultAppEnv) }

func MongoURI() string { return Get("MONGO_URI", defaultMongoURI) }
func MongoDB() string  { return Get("MONGO_DB", defaultMongoDB) }

// RedisAddr returns the redis address, or "" when redis is not configured.
// The OTP store and queue fall back to their in-memory drivers without it.
func RedisAddr() string     { return Get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return Get("REDIS_PASSWORD", "") }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }

// ── Payment gateway ──────────────────────────────────────────────────────────

func GatewayKeyID() string   { return Get("RAZORPAY_KEY_ID", "") }
func GatewaySecret() string  { return Get("RAZORPAY_KEY_SECRET", "") }
func GatewayBaseURL() string { return Get("RAZORPAY_BASE_URL", defaultGatewayURL) }

// ── Mail ─────────────────────────────────────────────────────────────────────

func MailHost() string     { return Get("MAIL_HOST", defaultMailHost) }
func MailPort() string     { return Get("MAIL_PORT", defaultMailPort) }
func MailUsername() string { return Get("MAIL_USERNAME", "") }
func MailPassword() string { return Get("MAIL_PASSWORD", "") }
func MailFrom() string     { return Get("MAIL_FROM", MailUsername()) }
func MailFromName() string { return Get("MAIL_FROM_NAME", defaultMailFromName) }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDisk() string      { return Get("STORAGE_DISK", defaultStorageDisk) }
func StorageLocalRoot() string { return Get("STORAGE_LOCAL_ROOT", defaultStorageRoot) }
func StorageURL() string       { return Get("STORAGE_URL", defaultStorageURL) }

func StorageS3Bucket() string   { return Get("S3_BUCKET", "") }
func StorageS3Region() string   { return Get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { return Get("S3_KEY", "") }
func StorageS3Secret() string   { return Get("S3_SECRET", "") }
func StorageS3Endpoint() string { return Get("S3_ENDPOINT", "") }
func StorageS3URL() string      { return Get("S3_URL", "") }
