package common

import (
	"context"
	"fmt"
	"sync"
)

// Substrate is the durable string-keyed store the services persist their
// collections into. Every value is a complete, internally consistent JSON
// document; collections are always written wholesale, never patched in place.
//
// A missing key is reported as found == false, not as an error. Errors from a
// Substrate always mean the store itself failed and are wrapped in a
// *SubstrateError.
type Substrate interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// SubstrateError marks a hard storage failure. Callers should treat it as
// "the store is no longer in the state you believe it to be", unlike the soft
// not-found/duplicate results the services return for expected conditions.
type SubstrateError struct {
	Op  string
	Key string
	Err error
}

func (e *SubstrateError) Error() string {
	return fmt.Sprintf("substrate %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *SubstrateError) Unwrap() error {
	return e.Err
}

// MemorySubstrate is a map-backed Substrate. It is not durable and exists for
// tests and for wiring the services without a database file.
type MemorySubstrate struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemorySubstrate() *MemorySubstrate {
	return &MemorySubstrate{data: make(map[string]string)}
}

func (s *MemorySubstrate) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemorySubstrate) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemorySubstrate) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
