package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

const (
	ReportsFile = "reports.json"
	AlertsFile  = "alerts.json"
)

// FileStore keeps each collection in its own JSON file under dir.
//
// Writes within one process are serialized and replace the file by rename.
// Independent holders of an in-memory copy still overwrite each other's
// snapshots: the last save wins.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadReports(_ context.Context) ([]model.Report, error) {
	reports := []model.Report{}
	if err := s.load(ReportsFile, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *FileStore) SaveReports(_ context.Context, reports []model.Report) error {
	if reports == nil {
		reports = []model.Report{}
	}
	return s.save(ReportsFile, reports)
}

func (s *FileStore) LoadKeywords(_ context.Context) ([]string, error) {
	keywords := []string{}
	if err := s.load(AlertsFile, &keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

func (s *FileStore) SaveKeywords(_ context.Context, keywords []string) error {
	return s.save(AlertsFile, model.NormalizeKeywords(keywords))
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load(name string, dst any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	// "null" 视为空集合
	switch v := dst.(type) {
	case *[]model.Report:
		if *v == nil {
			*v = []model.Report{}
		}
	case *[]string:
		if *v == nil {
			*v = []string{}
		}
	}
	return nil
}

func (s *FileStore) save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("storage: replace %s: %w", name, err)
	}
	return nil
}
