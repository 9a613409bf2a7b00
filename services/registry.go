// Package services implements the short code registry.
package services

import (
	"errors"
	"strings"

	"tinyurl/storage"
	"tinyurl/types"
	"tinyurl/urlgen"
	"tinyurl/utils"
)

var (
	// ErrInvalidURL is returned when the long URL is not an absolute http/https URL.
	ErrInvalidURL = utils.ErrInvalidURL
	// ErrInvalidShortCode is returned for codes outside ^[0-9A-Za-z]{1,16}$.
	ErrInvalidShortCode = errors.New("short code must be 1-16 chars [0-9A-Za-z] only")
	// ErrShortCodeInUse is returned when a custom code is already taken.
	ErrShortCodeInUse = errors.New("custom code already in use")
	// ErrStorageCapacityReached is returned when no more entries fit.
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// IsInvalidArgument reports whether err is a caller input error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrInvalidShortCode)
}

// IsConflict reports whether err means the requested code is taken.
func IsConflict(err error) bool {
	return errors.Is(err, ErrShortCodeInUse)
}

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrShortURLExists):
		return ErrShortCodeInUse
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrStorageCapacityReached
	default:
		return err
	}
}

// Registry maps short codes to long URLs and counts clicks. All methods are
// safe for concurrent use and return copies of stored entries.
type Registry interface {
	Create(longURL, customCode string) (types.Entry, error)
	GetAllEntries() []types.Entry
	Delete(code string) (bool, error)
	Resolve(code string) (string, bool)
	IncrementClick(code string)
	Stats(code string) (types.Entry, bool)
	Count() int
}

type registry struct {
	store    storage.Storage
	generate urlgen.Generator
}

// NewRegistry returns a Registry backed by store, drawing codes from generate
// when the caller does not supply one.
func NewRegistry(store storage.Storage, generate urlgen.Generator) Registry {
	return &registry{store: store, generate: generate}
}

// Create validates and normalizes longURL, then registers it under
// customCode, or under a freshly generated code when customCode is blank.
func (r *registry) Create(longURL, customCode string) (types.Entry, error) {
	normalized, err := utils.NormalizeLongURL(longURL)
	if err != nil {
		return types.Entry{}, ErrInvalidURL
	}

	if strings.TrimSpace(customCode) != "" {
		if !utils.IsValidShortCode(customCode) {
			return types.Entry{}, ErrInvalidShortCode
		}
		rec := storage.NewRecord(customCode, normalized)
		if err := r.store.InsertIfAbsent(rec); err != nil {
			return types.Entry{}, handleStorageError(err)
		}
		return rec.Snapshot(), nil
	}

	for {
		rec := storage.NewRecord(r.generate(), normalized)
		err := r.store.InsertIfAbsent(rec)
		if err == nil {
			return rec.Snapshot(), nil
		}
		if !errors.Is(err, storage.ErrShortURLExists) {
			return types.Entry{}, handleStorageError(err)
		}
		// collision: draw a whole new code
	}
}

// GetAllEntries returns a snapshot of every entry in unspecified order.
func (r *registry) GetAllEntries() []types.Entry {
	records := r.store.All()
	entries := make([]types.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rec.Snapshot())
	}
	return entries
}

// Delete removes code. Deleting an absent code is not an error.
func (r *registry) Delete(code string) (bool, error) {
	if !utils.IsValidShortCode(code) {
		return false, ErrInvalidShortCode
	}
	return r.store.Remove(code), nil
}

// Resolve returns the long URL for code. Malformed and unknown codes are
// both reported as not found.
func (r *registry) Resolve(code string) (string, bool) {
	rec, ok := r.lookup(code)
	if !ok {
		return "", false
	}
	return rec.LongURL(), true
}

// IncrementClick adds one click to code. It is a no-op when code is gone,
// which happens if a delete lands between Resolve and IncrementClick.
func (r *registry) IncrementClick(code string) {
	if rec, ok := r.lookup(code); ok {
		rec.Increment()
	}
}

// Stats returns a snapshot of a single entry.
func (r *registry) Stats(code string) (types.Entry, bool) {
	rec, ok := r.lookup(code)
	if !ok {
		return types.Entry{}, false
	}
	return rec.Snapshot(), true
}

func (r *registry) Count() int {
	return r.store.Len()
}

func (r *registry) lookup(code string) (*storage.Record, bool) {
	if !utils.IsValidShortCode(code) {
		return nil, false
	}
	return r.store.Get(code)
}
