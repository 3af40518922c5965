package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest records how a workspace was created. status and serve use it to
// recognize a workspace; the db commands work from the database path alone
// and never consult it.
type Manifest struct {
	Name          string    `json:"name"`
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	PythonVersion string    `json:"python_version"`
	ToolVersion   string    `json:"tool_version"`
}

// NewManifest builds a manifest for a freshly scaffolded workspace.
func NewManifest(name, pythonVersion, toolVersion string) Manifest {
	return Manifest{
		Name:          name,
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		PythonVersion: pythonVersion,
		ToolVersion:   toolVersion,
	}
}

// WriteManifest writes the manifest into dir.
func WriteManifest(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from dir.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
