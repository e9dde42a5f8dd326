package repository

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// MemoryStore keeps the encoded documents in memory. It backs
// STORAGE_DRIVER=memory and the tests of the packages above.
type MemoryStore struct {
	mu    sync.Mutex
	raw   map[string][]byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{raw: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context) (Documents, error) {
	if err := ctx.Err(); err != nil {
		return Documents{}, &PersistenceError{Op: "load", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs Documents
	for _, bucket := range buckets {
		data, ok := s.raw[bucket]
		if !ok {
			continue
		}
		if err := decodeBucket(&docs, bucket, data); err != nil {
			log.Warn().Err(err).Str("bucket", bucket).Msg("malformed bucket ignored")
		}
	}
	return docs, nil
}

func (s *MemoryStore) Save(ctx context.Context, docs Documents) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	encoded := make(map[string][]byte, len(buckets))
	for _, bucket := range buckets {
		data, err := encodeBucket(docs, bucket)
		if err != nil {
			return &PersistenceError{Op: "save", Document: bucket, Err: err}
		}
		encoded[bucket] = data
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = encoded
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Raw returns the last saved encoding of a bucket.
func (s *MemoryStore) Raw(bucket string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.raw[bucket]...)
}

// SetRaw replaces a bucket with arbitrary bytes, nil removes it.
func (s *MemoryStore) SetRaw(bucket string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		delete(s.raw, bucket)
		return
	}
	s.raw[bucket] = append([]byte(nil), data...)
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
