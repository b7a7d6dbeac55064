// Package kv is the persistence layer: a small byte-oriented key-value
// Store with pluggable backends, and a typed Repository on top of it that
// serializes values as JSON.
//
// A value that fails to decode is treated as absent. Callers always get
// the zero value back and never an error for corrupt data; the failure is
// only reported through the debug hook.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned by Store.Get for a missing key.
var ErrNotFound = errors.New("key not found")

var validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]+$`)

// Store is a raw key-value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ValidateKey checks that a key is safe to use as a file name or table key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if len(key) > 256 {
		return fmt.Errorf("key too long: %d characters", len(key))
	}
	if !validKeyPattern.MatchString(key) {
		return fmt.Errorf("key contains invalid characters: %q", key)
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("key contains path traversal: %q", key)
	}
	return nil
}

// Repository reads and writes typed values through a Store.
type Repository struct {
	store  Store
	debugf func(format string, args ...any)
}

// Option configures a Repository.
type Option func(*Repository)

// WithDebug sets the hook used to report degraded reads.
func WithDebug(f func(format string, args ...any)) Option {
	return func(r *Repository) { r.debugf = f }
}

// NewRepository wraps a Store.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		debugf: func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close releases the underlying Store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// Delete removes a key. Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Load returns the value stored under key, or the zero value when the key is
// missing or its content does not decode as T.
func Load[T any](ctx context.Context, r *Repository, key string) (T, error) {
	var zero T
	if err := ValidateKey(key); err != nil {
		return zero, err
	}

	data, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		r.debugf("discarding corrupt value under %s: %v", key, err)
		return zero, nil
	}
	return v, nil
}

// Save stores v under key.
func Save[T any](ctx context.Context, r *Repository, key string, v T) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
