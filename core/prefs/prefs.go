package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Preferences is the small user-preference document persisted between runs.
type Preferences struct {
	// LastNickname is the nickname used for the most recent launch.
	LastNickname string `json:"last_nickname"`
	// LastServer is the identifying number of the most recently joined
	// server, if a specific server was selected.
	LastServer *int `json:"last_server,omitempty"`
}

// Config holds configuration for the preferences store.
type Config struct {
	// Path is the location of the preferences document.
	Path string `mapstructure:"path" default:"config.json"`
}

// Store owns the preferences document. Concurrent external edits to the
// backing file are not detected; last write wins.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a preferences store over the configured path.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	return &Store{path: cfg.Path, logger: logger}
}

// Load reads the preferences document. It never fails: a missing or
// malformed file yields the zero value, with a warning as the only
// observable side effect.
func (s *Store) Load() Preferences {
	var p Preferences

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to read preferences", zap.String("path", s.path), zap.Error(err))
		}
		return p
	}

	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("Malformed preferences document, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		return Preferences{}
	}
	return p
}

// Save persists the preferences document. The write is atomic from a
// reader's perspective: the document is staged in a temp file and renamed
// over the target.
func (s *Store) Save(p Preferences) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := WriteFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("persist preferences: %w", err)
	}

	s.logger.Info("Preferences saved", zap.String("path", s.path))
	return nil
}

// WriteFileAtomic stages data in a temp file in the target's directory and
// renames it into place. Sibling packages that own their own documents use
// it as well.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
