// Package storage defines the note vault file-system abstraction.
package storage

// Provider is the interface for note store operations. All paths are
// relative to the vault root.
type Provider interface {
	// Exists reports whether a file is present at path.
	Exists(path string) bool
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Create atomically writes a new file; it fails with
	// apperr.ErrAlreadyExists when the path is taken.
	Create(path string, content []byte) error
	// Modify atomically replaces an existing file; it fails with
	// apperr.ErrNotFound when the path is missing.
	Modify(path string, content []byte) error
	// CreateFolder ensures the directory at path exists.
	CreateFolder(path string) error
}
