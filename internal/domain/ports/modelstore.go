// Package ports defines the interfaces the domain consumes from
// infrastructure adapters.
package ports

import "github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"

// ModelStore opens and writes IFC models from and to their persisted
// exchange-format representation. The encoding is opaque to the domain.
type ModelStore interface {
	// Open parses the file at path into an in-memory model.
	Open(path string) (*model.Model, error)

	// Write persists the model to path. Callers only write after the
	// whole pipeline has succeeded; a failed run leaves no output file.
	Write(m *model.Model, path string) error
}
