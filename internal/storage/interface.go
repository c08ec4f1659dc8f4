package storage

// ImageStore defines the interface for persisting scraped images.
type ImageStore interface {
	// EnsureFolder creates the destination folder if needed and returns its path
	EnsureFolder(name string) (string, error)

	// Save writes image bytes to <folderPath>/<fileName>
	Save(folderPath, fileName string, data []byte) error
}
