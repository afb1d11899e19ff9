package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// envPrefix is the prefix for environment-variable key overrides, e.g.
// AICHAT_API_KEY_OPENAI or AICHAT_API_KEY_GEMINI_GOOGLE.
const envPrefix = "AICHAT_API_KEY_"

var loadDotenvOnce sync.Once

// APIKeyName returns the storage key for a provider's API key.
func APIKeyName(providerID string) string {
	return "api_key_" + providerID
}

// EnvKeyName returns the environment variable consulted for a provider's
// API key. Provider ids are uppercased and non-alphanumeric runs collapse
// to single underscores: "Gemini (Google)" -> AICHAT_API_KEY_GEMINI_GOOGLE.
func EnvKeyName(providerID string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToUpper(providerID) {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return envPrefix + strings.TrimSuffix(b.String(), "_")
}

// GetKeysPath returns the path to the API keys file
func GetKeysPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "keys.json"), nil
}

// LoadKeys loads the stored API keys. A missing file yields an empty map.
func LoadKeys() (map[string]string, error) {
	path, err := GetKeysPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read keys file: %w", err)
	}

	keys := map[string]string{}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse keys file: %w", err)
	}

	return keys, nil
}

// SaveKeys persists the API keys with owner-only permissions.
func SaveKeys(keys map[string]string) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keys: %w", err)
	}

	path := filepath.Join(configDir, "keys.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keys file: %w", err)
	}

	return nil
}

// APIKey returns the API key for a provider, or "" when none is configured.
// Environment variables (including a .env file in the working directory)
// take precedence over the keys file.
func APIKey(providerID string) (string, error) {
	loadDotenvOnce.Do(func() {
		// Best effort; a missing .env is the normal case.
		_ = godotenv.Load()
	})

	if key := os.Getenv(EnvKeyName(providerID)); key != "" {
		return key, nil
	}

	keys, err := LoadKeys()
	if err != nil {
		return "", err
	}

	return keys[APIKeyName(providerID)], nil
}

// SetAPIKey stores an API key for a provider.
func SetAPIKey(providerID, key string) error {
	keys, err := LoadKeys()
	if err != nil {
		return err
	}

	keys[APIKeyName(providerID)] = strings.TrimSpace(key)
	return SaveKeys(keys)
}

// DeleteAPIKey removes a provider's stored API key.
func DeleteAPIKey(providerID string) error {
	keys, err := LoadKeys()
	if err != nil {
		return err
	}

	name := APIKeyName(providerID)
	if _, ok := keys[name]; !ok {
		return fmt.Errorf("no API key stored for %q", providerID)
	}

	delete(keys, name)
	return SaveKeys(keys)
}

// StoredKeyNames returns the sorted storage names of all stored keys.
func StoredKeyNames() ([]string, error) {
	keys, err := LoadKeys()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MaskKey returns a redacted rendering of an API key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
