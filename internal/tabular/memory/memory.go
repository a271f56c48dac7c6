// Package memory holds tables in process memory. It is the dev/demo
// backend and the test double for everything that persists tables.
package memory

import (
	"context"
	"sync"

	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

type Store struct {
	mu     sync.Mutex
	tables map[string][]byte
}

func New() *Store {
	return &Store{tables: make(map[string][]byte)}
}

// Load returns the stored table for key, or an empty schema-shaped table
// when the key has never been saved.
func (s *Store) Load(_ context.Context, key string, schema []string) tabular.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.tables[key]
	if !ok {
		return tabular.Empty(schema)
	}
	return tabular.DecodeCSV(content, schema)
}

// Save overwrites the table at key. The change description is ignored;
// there is no history to attach it to.
func (s *Store) Save(_ context.Context, key string, t tabular.Table, _ string) error {
	content, err := t.EncodeCSV()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[key] = content
	return nil
}

var _ tabular.Store = (*Store)(nil)
