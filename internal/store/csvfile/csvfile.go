// Package csvfile persists a dataset as a single CSV file at a fixed path.
package csvfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stockmail/internal/dataset"
)

type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Save overwrites the file with the full dataset. The data is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save(d dataset.Dataset) error {
	if s.Path == "" {
		return errors.New("csv path is empty")
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.WriteCSV(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}
	return nil
}

// Load reads the dataset back. A missing file is an empty dataset.
func (s *Store) Load() (dataset.Dataset, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return dataset.Dataset{}, nil
	}
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	d, err := dataset.ReadCSV(f)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return d, nil
}
