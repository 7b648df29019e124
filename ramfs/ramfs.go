// Package ramfs is a tiny in-memory file store: a fixed table of named byte
// blobs. Nothing survives a restart; the store is reseeded at boot.
package ramfs

import (
	"errors"
	"io"
)

// Table and entry limits.
const (
	MaxFiles    = 16
	MaxNameLen  = 15
	MaxFileSize = 512
)

var (
	ErrNotFound = errors.New("no such file")
	ErrExists   = errors.New("file already exists")
	ErrNoSpace  = errors.New("file table full")
)

// welcomeText seeds the store at init so a fresh boot has something to cat.
const welcomeText = "welcome: This is MiniOS (in-memory FS)\n"

type entry struct {
	name string
	used bool
	size int
	data [MaxFileSize]byte
}

// Store is the 16-slot file table. It belongs to the main context only and
// needs no locking.
type Store struct {
	files [MaxFiles]entry
}

// New returns a store seeded with the welcome file.
func New() *Store {
	s := &Store{}
	s.Write("welcome", []byte(welcomeText))
	return s
}

// clipName bounds a name to the table's name capacity, truncating rather
// than failing.
func clipName(name string) string {
	if len(name) > MaxNameLen {
		return name[:MaxNameLen]
	}
	return name
}

// find returns the live slot whose stored name matches exactly, length
// included.
func (s *Store) find(name string) int {
	for i := range s.files {
		if s.files[i].used && s.files[i].name == name {
			return i
		}
	}
	return -1
}

// Exists reports whether a live entry has the given name.
func (s *Store) Exists(name string) bool {
	return s.find(name) >= 0
}

// Create claims the first free slot for a new empty file. The name is
// clipped to the slot capacity; the duplicate check runs on the clipped
// name so no two live entries can ever share one.
func (s *Store) Create(name string) error {
	if s.find(clipName(name)) >= 0 {
		return ErrExists
	}
	for i := range s.files {
		if !s.files[i].used {
			s.files[i] = entry{name: clipName(name), used: true}
			return nil
		}
	}
	return ErrNoSpace
}

// Write replaces a file's contents, creating it if missing. At most
// MaxFileSize bytes are kept; the returned count is what was stored, so a
// short count signals truncation.
func (s *Store) Write(name string, data []byte) (int, error) {
	idx := s.find(clipName(name))
	if idx < 0 {
		if err := s.Create(name); err != nil {
			return 0, err
		}
		idx = s.find(clipName(name))
	}
	n := copy(s.files[idx].data[:], data)
	s.files[idx].size = n
	return n, nil
}

// ReadTo streams a file's contents to w and returns the byte count.
func (s *Store) ReadTo(name string, w io.Writer) (int, error) {
	idx := s.find(name)
	if idx < 0 {
		return 0, ErrNotFound
	}
	e := &s.files[idx]
	if _, err := w.Write(e.data[:e.size]); err != nil {
		return 0, err
	}
	return e.size, nil
}

// Remove frees a file's slot. The data is not wiped, only unreachable.
func (s *Store) Remove(name string) error {
	idx := s.find(name)
	if idx < 0 {
		return ErrNotFound
	}
	s.files[idx].used = false
	return nil
}

// Info describes one live entry.
type Info struct {
	Name string
	Size int
}

// List reports all live entries in table order.
func (s *Store) List() []Info {
	var out []Info
	for i := range s.files {
		if s.files[i].used {
			out = append(out, Info{Name: s.files[i].name, Size: s.files[i].size})
		}
	}
	return out
}
