package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the per-competition config the remote workflows read back.
const FileName = "signate-config.json"

var (
	ErrInvalidFileKey = errors.New("invalid --file-key (expected NAME:KEY)")
	ErrNotFound       = errors.New("competition config not found")
)

// CompetitionConfig ties a local directory to a task on the platform.
type CompetitionConfig struct {
	TaskKey  string            `json:"task_key"`
	FileKeys map[string]string `json:"file_keys"`
}

// ParseFileKeys turns NAME:KEY tokens into a mapping. Only the first colon
// splits, so keys may contain colons. A repeated name keeps its last key.
func ParseFileKeys(tokens []string) (map[string]string, error) {
	fileKeys := make(map[string]string, len(tokens))
	for _, token := range tokens {
		name, key, ok := strings.Cut(token, ":")
		if !ok || name == "" || key == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFileKey, token)
		}
		fileKeys[name] = key
	}
	return fileKeys, nil
}

// Validate checks the invariants the workflows rely on.
func (c *CompetitionConfig) Validate() error {
	if strings.TrimSpace(c.TaskKey) == "" {
		return fmt.Errorf("task_key cannot be empty")
	}
	for name, key := range c.FileKeys {
		if name == "" || key == "" {
			return fmt.Errorf("file_keys entry %q: name and key must be non-empty", name)
		}
	}
	return nil
}

// Marshal renders the config with two-space indentation and a trailing newline.
// Non-ASCII names are kept as-is.
func (c *CompetitionConfig) Marshal() ([]byte, error) {
	out := *c
	if out.FileKeys == nil {
		out.FileKeys = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode competition config: %w", err)
	}
	return buf.Bytes(), nil
}

// Path returns the config location inside a competition directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether dir holds a competition config.
func Exists(dir string) bool {
	info, err := os.Stat(Path(dir))
	return err == nil && !info.IsDir()
}

// LoadCompetition reads and validates dir's config.
func LoadCompetition(dir string) (*CompetitionConfig, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, Path(dir))
		}
		return nil, fmt.Errorf("failed to read competition config: %w", err)
	}

	var cfg CompetitionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Path(dir), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", Path(dir), err)
	}
	return &cfg, nil
}
