package patches

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"launcher-agent/core/prefs"

	"go.uber.org/zap"
)

// Config holds configuration for the plugin-configuration document.
type Config struct {
	// Path is the location of the plugin-configuration document. A leading
	// "~" is expanded to the user's home directory.
	Path string `mapstructure:"path" default:"~/AppData/Local/Programs/Arizona Games Launcher/bin/arizona/preloading_plugins/#ArizonaPatches.json"`
}

// ExpandPath resolves the "~" prefix in the document path.
func (c *Config) ExpandPath() {
	if c.Path == "~" || strings.HasPrefix(c.Path, "~/") || strings.HasPrefix(c.Path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			c.Path = filepath.Join(home, c.Path[1:])
		}
	}
}

// Sentinel errors for the patch document.
var (
	// ErrNotFound is returned when the backing file is absent.
	ErrNotFound = errors.New("patch document not found")

	// ErrParse is returned when the document, after comment removal, is not
	// well-formed JSON.
	ErrParse = errors.New("patch document parse failed")
)

// Codec reads and writes the plugin-configuration document. The document is
// a relaxed JSON dialect: full-line comments starting with // are tolerated
// on read. Writing is lossy with respect to comments; write followed by
// read reproduces a structurally equal document, comments gone.
type Codec struct {
	path   string
	logger *zap.Logger
}

// NewCodec creates a codec over the configured document path.
func NewCodec(cfg Config, logger *zap.Logger) *Codec {
	return &Codec{path: cfg.Path, logger: logger}
}

// Read loads the document, dropping comment lines before parsing. The
// returned tree is opaque pass-through data; no schema is enforced beyond
// well-formedness.
func (c *Codec) Read() (any, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.logger.Error("Patch document missing", zap.String("path", c.path))
			return nil, fmt.Errorf("%w: %s", ErrNotFound, c.path)
		}
		return nil, fmt.Errorf("read patch document: %w", err)
	}

	var doc any
	if err := json.Unmarshal(stripComments(data), &doc); err != nil {
		c.logger.Error("Patch document unparsable after comment removal", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// Write serializes the document with stable indentation and replaces the
// backing file atomically. Comments present in the previous file are not
// preserved.
func (c *Codec) Write(doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode patch document: %w", err)
	}

	if err := prefs.WriteFileAtomic(c.path, buf.Bytes()); err != nil {
		return fmt.Errorf("persist patch document: %w", err)
	}

	c.logger.Info("Patch document updated", zap.String("path", c.path))
	return nil
}

// stripComments drops every line whose content, ignoring leading whitespace,
// begins with //, then removes lines left blank. Trailing comments after
// real content and block comments are not supported.
func stripComments(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	kept := lines[:0]
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || bytes.HasPrefix(trimmed, []byte("//")) {
			continue
		}
		kept = append(kept, line)
	}
	return bytes.Join(kept, []byte("\n"))
}
