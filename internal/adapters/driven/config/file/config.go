// Package file loads the firetap run configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/firetap-cli/internal/core/domain"
)

// DefaultBatchSize is the page size used when the config does not set one.
const DefaultBatchSize = 500

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// CollectionConfig is the TOML shape of one extracted collection.
type CollectionConfig struct {
	Name               string            `toml:"name"`
	ReplicationKey     string            `toml:"replication_key"`
	ReplicationKeyType string            `toml:"replication_key_type"`
	Limit              int               `toml:"limit"`
	Schema             map[string]string `toml:"schema"`
}

// Config is the full run configuration.
type Config struct {
	ProjectID         string             `toml:"project_id"`
	CredentialsPath   string             `toml:"credentials_path"`
	CredentialsJSON   string             `toml:"credentials_json"`
	CredentialsBase64 string             `toml:"credentials_base64"`
	BatchSize         int                `toml:"batch_size"`
	StatePath         string             `toml:"state_path"`
	StateBackend      string             `toml:"state_backend"`
	Collections       []CollectionConfig `toml:"collections"`
}

// Load reads and validates a configuration file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.StateBackend == "" {
		c.StateBackend = BackendFile
	}
	if c.StatePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			name := "state.json"
			if c.StateBackend == BackendSQLite {
				name = "state.db"
			}
			c.StatePath = filepath.Join(home, ".firetap", name)
		}
	}
	for i := range c.Collections {
		// Timestamp is the usual replication key type; only "string" keys
		// need to say so.
		if c.Collections[i].ReplicationKey != "" && c.Collections[i].ReplicationKeyType == "" {
			c.Collections[i].ReplicationKeyType = string(domain.ReplicationKeyTimestamp)
		}
	}
}

// Validate checks the configuration. All failures here are fatal before any
// extraction begins.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("%w: project_id is required", domain.ErrInvalidConfig)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be positive", domain.ErrInvalidConfig)
	}
	if c.StateBackend != BackendFile && c.StateBackend != BackendSQLite {
		return fmt.Errorf("%w: unknown state_backend %q", domain.ErrInvalidConfig, c.StateBackend)
	}
	if len(c.Collections) == 0 {
		return fmt.Errorf("%w: at least one collection is required", domain.ErrInvalidConfig)
	}
	return domain.ValidateSpecs(c.Specs())
}

// Specs converts the configured collections into domain specs.
func (c *Config) Specs() []domain.CollectionSpec {
	specs := make([]domain.CollectionSpec, len(c.Collections))
	for i, cc := range c.Collections {
		specs[i] = domain.CollectionSpec{
			Name:               cc.Name,
			ReplicationKey:     cc.ReplicationKey,
			ReplicationKeyType: domain.ReplicationKeyType(cc.ReplicationKeyType),
			Limit:              cc.Limit,
			Schema:             cc.Schema,
		}
	}
	return specs
}
