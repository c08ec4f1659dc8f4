package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements ImageStore on the local filesystem.
// All folders are created under a single base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a new LocalStore rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// EnsureFolder creates the destination folder if needed.
// Parameters:
//   - name: folder name relative to the base directory.
// Returns:
//   - string: full folder path.
//   - error: non-nil if the directory cannot be created.
func (s *LocalStore) EnsureFolder(name string) (string, error) {
	path := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return path, nil
}

// Save writes image bytes to disk. Writes are not atomic; a failed write
// can leave a partial file behind.
func (s *LocalStore) Save(folderPath, fileName string, data []byte) error {
	path := s.Path(folderPath, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Path returns the full path an image would be saved to.
func (s *LocalStore) Path(folderPath, fileName string) string {
	return filepath.Join(folderPath, fileName)
}
