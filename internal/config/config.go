// Package config persists the toggl-tui settings file.
//
// The file lives in the platform config directory for the
// (org, beardo, toggl-tui) application and is named toml.init.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

const (
	Qualifier    = "org"
	Organization = "beardo"
	Application  = "toggl-tui"
	FileName     = "toml.init"
)

var (
	// ErrPathNotFound is returned when the platform cannot supply a config directory.
	ErrPathNotFound = errors.New("unable to find default config path")
	// ErrCorrupt is returned when the config file exists but cannot be parsed.
	ErrCorrupt = errors.New("unable to parse config file")
)

// File is the content of the config file. Empty fields are absent.
type File struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// Dir returns the per-application config directory for the current platform.
func Dir() (string, error) {
	base, err := userConfigDir()
	if err != nil || base == "" {
		return "", ErrPathNotFound
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(base, Qualifier+"."+Organization+"."+Application), nil
	case "windows":
		return filepath.Join(base, Organization, Application, "config"), nil
	default:
		return filepath.Join(base, Application), nil
	}
}

// Store reads and writes the config file inside a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at the platform config directory.
func NewStore() (*Store, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// NewStoreAt returns a Store rooted at dir.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory holding the config file.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of the config file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads the config file. It returns (nil, nil) when the file does not
// exist and an error wrapping ErrCorrupt when it cannot be parsed.
func (s *Store) Load() (*File, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, path, err)
	}
	return &f, nil
}

// SaveAPIKey replaces the api_key field of the config file, creating the
// directory and file when missing. Other keys already in the file are kept.
// A file that cannot be parsed is moved to <path>.corrupt and replaced.
func (s *Store) SaveAPIKey(apiKey string) error {
	return s.update(func(raw map[string]any) {
		raw["api_key"] = apiKey
	})
}

func (s *Store) update(mutate func(map[string]any)) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := s.Path()
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			backupPath := path + ".corrupt"
			if err := os.Rename(path, backupPath); err != nil {
				return fmt.Errorf("backing up corrupt config file: %w", err)
			}
			raw = map[string]any{}
		}
	}

	mutate(raw)

	out, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("unable to serialize config file: %w", err)
	}
	return writeAtomic(path, out)
}

// writeAtomic writes data to a temp file next to path and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config file: %w", err)
	}
	return nil
}
