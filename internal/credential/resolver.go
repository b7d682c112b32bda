// Package credential decides which API key an invocation uses.
package credential

import (
	"errors"
	"fmt"

	"github.com/beardo/toggl-tui/internal/config"
	"github.com/beardo/toggl-tui/internal/logging"
)

// EnvAPIKey is the environment variable consulted for the API key.
const EnvAPIKey = "TOGGL_API_KEY"

// ErrMissingAPIKey is returned when a command needs an API key and no source
// provides one.
var ErrMissingAPIKey = errors.New("missing API key")

// Source names where a key came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
)

// Candidate is a key offered by one source. An empty Key means the source had
// nothing to offer.
type Candidate struct {
	Source Source
	Key    string
}

// Resolve picks the command-line override when set and the stored config key
// otherwise. It returns "" when neither is available.
func Resolve(override string, cfg *config.File) string {
	var stored string
	if cfg != nil {
		stored = cfg.APIKey
	}
	c, _ := First(
		Candidate{Source: SourceFlag, Key: override},
		Candidate{Source: SourceConfig, Key: stored},
	)
	return c.Key
}

// First returns the first candidate carrying a key.
func First(candidates ...Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if c.Key != "" {
			return c, true
		}
	}
	return Candidate{}, false
}

// Resolver walks the flag, environment, keyring and config file sources in
// that order and stops at the first one holding a key. Sources are consulted
// lazily, so a broken config file only matters when nothing earlier matched.
type Resolver struct {
	Override string
	Getenv   func(string) string
	// Keyring is optional.
	Keyring KeyStore
	// LoadConfig is optional.
	LoadConfig func() (*config.File, error)
}

// Resolve returns the winning candidate or an error wrapping ErrMissingAPIKey.
func (r *Resolver) Resolve() (Candidate, error) {
	if r.Override != "" {
		return r.found(Candidate{Source: SourceFlag, Key: r.Override})
	}

	if r.Getenv != nil {
		if key := r.Getenv(EnvAPIKey); key != "" {
			return r.found(Candidate{Source: SourceEnv, Key: key})
		}
	}

	if r.Keyring != nil {
		key, err := r.Keyring.Get()
		switch {
		case err == nil && key != "":
			return r.found(Candidate{Source: SourceKeyring, Key: key})
		case err != nil && !errors.Is(err, ErrNotFound):
			logging.Warn("skipping keyring", "err", err)
		}
	}

	if r.LoadConfig != nil {
		cfg, err := r.LoadConfig()
		if err != nil {
			return Candidate{}, err
		}
		if cfg != nil && cfg.APIKey != "" {
			return r.found(Candidate{Source: SourceConfig, Key: cfg.APIKey})
		}
	}

	return Candidate{}, fmt.Errorf("%w: pass --api-key, set %s or run 'toggl auth key <api_key>'", ErrMissingAPIKey, EnvAPIKey)
}

func (r *Resolver) found(c Candidate) (Candidate, error) {
	logging.Debug("resolved API key", "source", c.Source)
	return c, nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	const visible = 4
	if len(key) <= visible {
		return "****"
	}
	return "****" + key[len(key)-visible:]
}
