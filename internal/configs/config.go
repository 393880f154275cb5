package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// KeyDB is the config key, and flag name, holding the archive location.
	KeyDB = "db"

	// EnvDB overrides the config file when set.
	EnvDB = "ROTP_DB"
)

// UserConfig is the on-disk user configuration.
type UserConfig struct {
	DB string `toml:"db"`
}

// Resolver answers where the archive lives. Precedence is the --db flag,
// then ROTP_DB, then the config file.
type Resolver struct {
	v    *viper.Viper
	flag *pflag.Flag
}

// Sources reported by Resolver.Source.
const (
	SourceFlag   = "flag"
	SourceEnv    = "env"
	SourceConfig = "config"
	SourceUnset  = "unset"
)

// NewResolver reads configFile if it exists and binds the db flag from flags
// when one is registered. A missing config file is not an error.
func NewResolver(configFile string, flags *pflag.FlagSet) (*Resolver, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if err := v.BindEnv(KeyDB, EnvDB); err != nil {
		return nil, fmt.Errorf("binding %s: %w", EnvDB, err)
	}

	r := &Resolver{v: v}
	if flags != nil {
		if f := flags.Lookup(KeyDB); f != nil {
			if err := v.BindPFlag(KeyDB, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", KeyDB, err)
			}
			r.flag = f
		}
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to load user config: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking user config: %w", err)
		}
	}

	return r, nil
}

// DB returns the configured archive location, or "" when none is set.
func (r *Resolver) DB() string {
	return r.v.GetString(KeyDB)
}

// Source names where DB's answer came from: SourceFlag, SourceEnv,
// SourceConfig or SourceUnset.
func (r *Resolver) Source() string {
	switch {
	case r.flag != nil && r.flag.Changed:
		return SourceFlag
	case os.Getenv(EnvDB) != "":
		return SourceEnv
	case r.v.InConfig(KeyDB) && r.v.GetString(KeyDB) != "":
		return SourceConfig
	}
	return SourceUnset
}

// LoadUserConfig loads the user configuration, returning an empty config if
// the file does not exist.
func LoadUserConfig(configFile string) (*UserConfig, error) {
	config := &UserConfig{}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configFile, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration.
func SaveUserConfig(configFile string, config *UserConfig) error {
	if err := SaveTOML(configFile, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// RememberDB records path as the archive location in the user config,
// keeping any other settings already there.
func RememberDB(configFile, path string) error {
	config, err := LoadUserConfig(configFile)
	if err != nil {
		return err
	}
	config.DB = path
	return SaveUserConfig(configFile, config)
}
