package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
)

// Store reads and writes a design input file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (*model.Design, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()

	var design model.Design
	if err := dec.Decode(&design); err != nil {
		return nil, fmt.Errorf("failed to parse design %s: %w", s.path, err)
	}
	return &design, nil
}

func (s *Store) Save(design *model.Design) error {
	return writeAtomic(s.path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(design)
	})
}

// WriteReport renders r in the given format to path.
func WriteReport(path string, r report.Report, format string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return r.Write(w, format)
	})
}

// writeAtomic writes to a temporary file next to path and renames it into
// place, so readers never see a partial file.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	file.Sync()
	file.Close()

	return os.Rename(tmpPath, path)
}
