package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"moonlight/internal/modules/notify/domain"
	notifyout "moonlight/internal/modules/notify/port/out"

	"gopkg.in/yaml.v3"
)

// FileManifestStore reads notifier manifests from a YAML file next to
// the state document. Relative binary paths resolve against the data
// directory.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath, path string) notifyout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read notifier manifest store: %w", err)
	}
	var doc struct {
		Notifiers []domain.Manifest `yaml:"notifiers"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode notifier manifests: %w", err)
	}
	for i := range doc.Notifiers {
		if doc.Notifiers[i].Binary != "" && !filepath.IsAbs(doc.Notifiers[i].Binary) {
			doc.Notifiers[i].Binary = filepath.Clean(filepath.Join(s.basePath, doc.Notifiers[i].Binary))
		}
	}
	return doc.Notifiers, nil
}
