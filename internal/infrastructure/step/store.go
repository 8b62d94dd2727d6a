package step

import "github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"

// Store adapts this package to the ports.ModelStore interface.
type Store struct{}

// NewStore creates a STEP-backed model store.
func NewStore() *Store {
	return &Store{}
}

// Open parses the STEP file at path.
func (s *Store) Open(path string) (*model.Model, error) {
	return Open(path)
}

// Write serializes the model to path.
func (s *Store) Write(m *model.Model, path string) error {
	return WriteFile(m, path)
}
