// Package configs manages the user configuration for rotp.
//
// rotp needs one setting: where the encrypted archive lives. It is resolved,
// highest precedence first, from
//
//   - the --db flag
//   - the ROTP_DB environment variable
//   - the db key in $XDG_CONFIG_HOME/rotp/config.toml
//
// Reading goes through viper so the three sources merge in one place.
// Writing (after onboarding) uses BurntSushi/toml directly via SaveTOML.
//
// The credential store never reads any of this itself. The CLI resolves the
// location here and passes it to store.Locate.
package configs
