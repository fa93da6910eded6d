package attachment

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MaxFilesPerUpload caps how many files one upload may carry.
const MaxFilesPerUpload = 5

var (
	// ErrNotFound is returned when the folder or the file does not exist.
	ErrNotFound = errors.New("attachment not found")
	// ErrNoFiles is returned when an upload carries no files.
	ErrNoFiles = errors.New("no files in upload")
	// ErrTooManyFiles is returned when an upload exceeds MaxFilesPerUpload.
	ErrTooManyFiles = errors.New("too many files in upload")
	// ErrInvalidName is returned for folder keys or file names that
	// would escape the storage root.
	ErrInvalidName = errors.New("invalid attachment name")
)

// FolderKey derives the storage folder for a visit: the day after the
// visit date, then the patient's full name, both concatenated as-is.
// The name is not normalized, so "Ana Gomez" and "ana gomez" are
// different folders.
func FolderKey(fullName string, visitDate time.Time) string {
	return visitDate.AddDate(0, 0, 1).Format("2006-01-02") + fullName
}

// File is one uploaded file: its name and its content.
type File struct {
	Name   string
	Reader io.Reader
}

// Store keeps visit attachments grouped by folder key.
type Store interface {
	// Save writes the files into the folder, creating it if needed.
	// A file that already exists is overwritten without notice.
	Save(folderKey string, files []File) error
	// List returns the file names in the folder, sorted.
	List(folderKey string) ([]string, error)
	// Open returns a reader over one stored file. The caller closes it.
	Open(folderKey, name string) (io.ReadCloser, error)
}

// FSStore stores attachments as plain files under a root directory,
// one subdirectory per folder key.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// checkName rejects anything that could leave the storage root. Folder
// keys embed user-supplied names, so this runs on every path segment.
func checkName(s string) error {
	if s == "" || s == "." || s == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
		return ErrInvalidName
	}
	return nil
}

func (s *FSStore) folderPath(folderKey string) (string, error) {
	if err := checkName(folderKey); err != nil {
		return "", err
	}
	return filepath.Join(s.root, folderKey), nil
}

func (s *FSStore) Save(folderKey string, files []File) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if len(files) > MaxFilesPerUpload {
		return ErrTooManyFiles
	}
	dir, err := s.folderPath(folderKey)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := checkName(f.Name); err != nil {
			return err
		}
	}
	// MkdirAll keeps repeat uploads into the same folder idempotent.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, filepath.Base(f.Name)), f.Reader); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, r io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (s *FSStore) List(folderKey string) ([]string, error) {
	dir, err := s.folderPath(folderKey)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FSStore) Open(folderKey, name string) (io.ReadCloser, error) {
	dir, err := s.folderPath(folderKey)
	if err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
