package credential

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/beardo/toggl-tui/internal/config"
)

const keyringUser = "api_key"

var (
	// ErrNotFound is returned when no API key is stored in the keyring.
	ErrNotFound = errors.New("API key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// KeyStore stores a single API key outside the config file.
type KeyStore interface {
	Get() (string, error)
	Set(apiKey string) error
	Delete() error
}

// Keyring is a KeyStore backed by the OS keyring.
type Keyring struct{}

// Get returns the stored API key or ErrNotFound.
func (Keyring) Get() (string, error) {
	key, err := keyring.Get(config.Application, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// Set stores apiKey in the keyring, replacing any previous value.
func (Keyring) Set(apiKey string) error {
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(config.Application, keyringUser, apiKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// Delete removes the stored API key.
func (Keyring) Delete() error {
	err := keyring.Delete(config.Application, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	return nil
}
