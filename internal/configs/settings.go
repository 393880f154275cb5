package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserSettings holds the per-user locations rotp reads and writes.
type UserSettings struct {
	UserConfigsPath string
	ConfigFile      string
	AuditFile       string
}

// LoadUserSettings resolves the user config directory, honouring
// XDG_CONFIG_HOME where the platform does.
func LoadUserSettings() (*UserSettings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	base := filepath.Join(configDir, "rotp")
	return &UserSettings{
		UserConfigsPath: base,
		ConfigFile:      filepath.Join(base, "config.toml"),
		AuditFile:       filepath.Join(base, "audit.jsonl"),
	}, nil
}
