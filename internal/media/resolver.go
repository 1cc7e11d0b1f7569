package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyRoot is returned when the resolver has no resources directory
var ErrEmptyRoot = errors.New("resources directory is required")

// Media is an event image ready to be attached to a reply
type Media struct {
	// Name is the file name shown to the user
	Name string

	// Path is the absolute path on disk
	Path string
}

// Open returns a reader for the file. The caller closes it.
func (m *Media) Open() (*os.File, error) {
	return os.Open(m.Path)
}

// Resolver maps event media paths to files under the resources directory
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at dir
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		return nil, ErrEmptyRoot
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return &Resolver{root: root}, nil
}

// Resolve returns the media for mediaPath, or false when the path is empty,
// points outside the resources directory or the file does not exist.
func (r *Resolver) Resolve(mediaPath string) (*Media, bool) {
	if r == nil || mediaPath == "" {
		return nil, false
	}

	path := filepath.Join(r.root, filepath.FromSlash(mediaPath))
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}

	return &Media{
		Name: filepath.Base(path),
		Path: path,
	}, true
}
