// Package storage holds the key-value contract every service persists through.
// Values are JSON documents; the drivers never interpret them.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat string -> bytes store with no transactions beyond SetMulti.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMulti writes all pairs in one batch. Drivers apply it atomically
	// where the backend allows (memory, redis MULTI/EXEC, postgres tx).
	SetMulti(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Well-known keys. Per-user documents are built with UserKey.
const (
	KeyRegisteredUsers   = "registered_users"
	KeyTherapistServices = "therapist_services"
	KeyBookableTherapist = "therapists"
	KeyBookings          = "bookings"
	KeyUserCredentials   = "user_credentials"

	PrefixUserProgress = "user_progress"
	PrefixCravingLogs  = "craving_logs"
	PrefixSleepLogs    = "sleep_logs"
	PrefixMoodEntries  = "mood_entries"
	PrefixSession      = "session"
)

// UserKey scopes a document prefix to a single owner, e.g. user_progress:42.
func UserKey(prefix, id string) string {
	return prefix + ":" + id
}

// LoadJSON reads key into dest. found is false when the key is missing.
// A document that fails to decode is reported as an error wrapping ErrCorrupt
// so callers can decide to fall back to an empty value.
func LoadJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// ErrCorrupt marks a stored document that is not valid JSON for its type.
var ErrCorrupt = errors.New("storage: corrupt document")

// SaveJSON marshals value and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Batch collects JSON documents for a single SetMulti call.
type Batch struct {
	values map[string][]byte
	err    error
}

func NewBatch() *Batch {
	return &Batch{values: make(map[string][]byte)}
}

// Put marshals value into the batch. The first marshal error sticks and is
// returned by Commit.
func (b *Batch) Put(key string, value interface{}) {
	if b.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("marshal %s: %w", key, err)
		return
	}
	b.values[key] = data
}

// Commit writes every collected document with one SetMulti.
func (b *Batch) Commit(ctx context.Context, s Store) error {
	if b.err != nil {
		return b.err
	}
	if len(b.values) == 0 {
		return nil
	}
	return s.SetMulti(ctx, b.values)
}
