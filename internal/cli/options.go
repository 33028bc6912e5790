package cli

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read when the matching flag is not set.
const (
	EnvStore          = "UNIFY_STORE"
	EnvStorePath      = "UNIFY_STORE_PATH"
	EnvRedisAddr      = "UNIFY_REDIS_ADDR"
	EnvRedisPassword  = "UNIFY_REDIS_PASSWORD"
	EnvEncryptionKey  = "UNIFY_ENCRYPTION_KEY"
	EnvFallbackKeys   = "UNIFY_ENCRYPTION_FALLBACK_KEYS"
	EnvCacheSize      = "UNIFY_CACHE_SIZE"
	defaultRedisAddr  = "localhost:6379"
	defaultSQLitePath = ".unify/solutions.db"
)

// Options carries the flags shared by every command.
type Options struct {
	Debug    bool
	LogLevel string
	Format   string

	// Engine
	NoOccursCheck bool
	MaxSteps      int

	// Solution store: "" disables persistence.
	Store     string
	StorePath string
	RedisAddr string
	CacheSize int
	// EncryptionKey is a hex encoded 32 byte AES key.
	EncryptionKey string
	FallbackKeys  []string

	// Source picks the problem loader: auto, file or loam.
	Source string
}

// ApplyEnv fills unset options from the environment.
func (o *Options) ApplyEnv() {
	if o.Store == "" {
		o.Store = os.Getenv(EnvStore)
	}
	if o.StorePath == "" {
		o.StorePath = os.Getenv(EnvStorePath)
	}
	if o.RedisAddr == "" {
		o.RedisAddr = os.Getenv(EnvRedisAddr)
	}
	if o.EncryptionKey == "" {
		o.EncryptionKey = os.Getenv(EnvEncryptionKey)
	}
	if len(o.FallbackKeys) == 0 {
		o.FallbackKeys = splitList(os.Getenv(EnvFallbackKeys))
	}
	if o.CacheSize == 0 {
		if n, err := strconv.Atoi(os.Getenv(EnvCacheSize)); err == nil {
			o.CacheSize = n
		}
	}
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
