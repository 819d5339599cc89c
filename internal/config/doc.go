// Package config manages user-level settings stored at ~/.dpgen/config.yaml.
// Values can be overridden with DPGEN_* environment variables. Settings
// returns the typed view used by the generator: date format, game data
// version, download timeout, GitHub access, custom templates file, line
// ending and pack format override.
package config
