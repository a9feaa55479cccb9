package site

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// PageEntry records one generated page: where it was written, the source
// document it came from (empty for synthesized pages like the index), and
// the content hash that produced it.
type PageEntry struct {
	Path   string `json:"path"`
	Source string `json:"source,omitempty"`
	SHA256 string `json:"sha256"`
}

// Manifest describes one completed build.
type Manifest struct {
	BuildID     string      `json:"build_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Title       string      `json:"title"`
	Pages       []PageEntry `json:"pages"`
}

// Write persists the manifest as JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by a previous build.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
