package kv

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string // file and sqlite
	RedisAddr     string
	RedisPassword string
}

// Open creates the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFile(opts.Dir)
	case BackendSQLite:
		return NewSQLite(filepath.Join(opts.Dir, "starstream.db"))
	case BackendRedis:
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPassword)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
