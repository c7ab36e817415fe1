package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sensor-logger/internal/sensorlog/domain"
	"sensor-logger/internal/sensorlog/usecases"
)

const (
	_dataDirMode  os.FileMode = 0o755
	_dataFileMode os.FileMode = 0o644
)

// EnsureDataDir resolves path to an absolute directory and creates it, with
// its parents, when it does not exist yet.
func EnsureDataDir(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving data path %s: %w", path, err)
	}

	if err := os.MkdirAll(absolute, _dataDirMode); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", absolute, err)
	}

	return absolute, nil
}

func NewFileStore(dataPath string) *FileStore {
	return &FileStore{dataPath: dataPath}
}

var _ usecases.ReadingStore = &FileStore{}

// FileStore keeps the latest temperature of every sensor in <id>.txt. The
// identifier is joined to the data path as is.
type FileStore struct {
	dataPath string
}

func (s *FileStore) Store(_ context.Context, reading domain.Reading) error {
	path := s.PathFor(reading.SensorID)
	if err := os.WriteFile(path, []byte(reading.Temperature), _dataFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func (s *FileStore) PathFor(id domain.SensorID) string {
	return filepath.Join(s.dataPath, id.FileName())
}

func (s *FileStore) DataPath() string {
	return s.dataPath
}
