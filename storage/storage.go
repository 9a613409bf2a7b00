// Package storage provides the concurrent backing store for short code records.
package storage

import (
	"errors"
	"sync/atomic"

	"tinyurl/types"
)

// Common errors returned by storage operations.
var (
	ErrShortURLExists         = errors.New("short URL already exists")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// Storage interface defines the primitives the registry is built on.
// Implementations must be safe for concurrent use without external locking.
type Storage interface {
	// InsertIfAbsent stores rec under rec.Code() only if that code is free.
	InsertIfAbsent(rec *Record) error
	Get(code string) (*Record, bool)
	// Remove deletes code and reports whether it was present.
	Remove(code string) bool
	All() []*Record
	Len() int
}

// Record is a stored mapping. Code and long URL never change after
// construction; only the click counter moves.
type Record struct {
	code    string
	longURL string
	clicks  atomic.Int64
}

// NewRecord creates a record with a zero click count.
func NewRecord(code, longURL string) *Record {
	return &Record{code: code, longURL: longURL}
}

func (r *Record) Code() string    { return r.code }
func (r *Record) LongURL() string { return r.longURL }
func (r *Record) Clicks() int64   { return r.clicks.Load() }

// Increment adds one click and returns the new total.
func (r *Record) Increment() int64 {
	return r.clicks.Add(1)
}

// Snapshot copies the record into a value callers may keep.
func (r *Record) Snapshot() types.Entry {
	return types.Entry{
		Code:       r.code,
		LongURL:    r.longURL,
		ClickCount: r.clicks.Load(),
	}
}
