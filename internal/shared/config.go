package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Matching MatchingConfig `toml:"matching"`
	Database DatabaseConfig `toml:"database"`
}

// LibraryConfig locates the compressed playlist container and controls backup naming.
type LibraryConfig struct {
	Path            string `toml:"path"`
	BackupSuffix    string `toml:"backup_suffix"`
	DefaultPlaylist string `toml:"default_playlist"`
}

// MatchingConfig exposes the fuzzy matching weights for tuning.
//
// Zero values fall back to the built-in defaults, so a config file may set
// only the knobs it cares about.
type MatchingConfig struct {
	Exact           float64 `toml:"exact"`
	ExactWithArtist float64 `toml:"exact_with_artist"`
	RefInCandidate  float64 `toml:"ref_in_candidate"`
	CandidateInRef  float64 `toml:"candidate_in_ref"`
	ArtistBonus     float64 `toml:"artist_bonus"`
	Threshold       float64 `toml:"threshold"`
}

// DatabaseConfig contains history database settings. An empty path disables history.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
