// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	cacheMu sync.Mutex
	cached  *Config

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string

	provider = NewProvider()
)

// Load returns the application configuration, loading it on first use and
// caching the result for subsequent calls.
func Load() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached != nil {
		return cached, nil
	}

	cfg, err := provider.Load(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	cached = cfg
	return cached, nil
}

// SetConfigFilePathOverride forces Load to read the given file instead of the
// platform config path. Invalidates any cached configuration.
func SetConfigFilePathOverride(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configFilePathOverride = path
	cached = nil
}

// InvalidateCache discards the cached configuration so the next Load re-reads
// from disk.
func InvalidateCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
}
