// Package config defines the gistloop configuration schema and its loader.
//
// Configuration is supplied as a YAML file with ${VAR} environment expansion.
// Every section has SetDefaults and Validate; a config that fails validation
// is fatal at process start.
package config

import (
	"fmt"
	"time"

	"github.com/gistloop/gistloop/pkg/aliases"
)

// Config is the root configuration.
type Config struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	LLMs           LLMsConfig             `yaml:"llms,omitempty" json:"llms,omitempty"`
	ModelProviders ModelProvidersConfig   `yaml:"model_providers,omitempty" json:"model_providers,omitempty"`
	Agents         map[string]AgentConfig `yaml:"agents,omitempty" json:"agents,omitempty"`
	Aliases        map[string]string      `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	Temporal TemporalConfig `yaml:"temporal,omitempty" json:"temporal,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty" json:"server,omitempty"`
	Storage  StorageConfig  `yaml:"storage,omitempty" json:"storage,omitempty"`
	Tracing  TracingConfig  `yaml:"tracing,omitempty" json:"tracing,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// SetDefaults applies defaults recursively.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = "gistloop"
	}
	c.LLMs.SetDefaults()
	c.ModelProviders.SetDefaults()
	c.Temporal.SetDefaults()
	c.Server.SetDefaults()
	c.Storage.SetDefaults()
	c.Tracing.SetDefaults()
	c.Logging.SetDefaults()

	for name, agent := range c.Agents {
		if agent.Name == "" {
			agent.Name = name
			c.Agents[name] = agent
		}
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.LLMs.Validate(); err != nil {
		return err
	}
	if err := c.ModelProviders.Validate(); err != nil {
		return err
	}
	if err := c.Temporal.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// AliasResolver builds an alias resolver over the configured alias table.
func (c *Config) AliasResolver() *aliases.Resolver {
	return aliases.NewResolver(c.Aliases)
}

// TemporalConfig configures the connection to the Temporal cluster and the
// workers this process may run.
type TemporalConfig struct {
	HostPort  string         `yaml:"host_port,omitempty" json:"host_port,omitempty"`
	Namespace string         `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Workers   []WorkerConfig `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// WorkerConfig declares one worker: its task queue and what it registers.
type WorkerConfig struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Queue      string   `yaml:"queue" json:"queue"`
	Workflows  []string `yaml:"workflows,omitempty" json:"workflows,omitempty"`
	Activities []string `yaml:"activities,omitempty" json:"activities,omitempty"`
}

// SetDefaults applies Temporal defaults: a local cluster and a single worker
// carrying both workflows and activities.
func (c *TemporalConfig) SetDefaults() {
	if c.HostPort == "" {
		c.HostPort = "localhost:7233"
	}
	if c.Namespace == "" {
		c.Namespace = "default"
	}
	if len(c.Workers) == 0 {
		c.Workers = []WorkerConfig{
			{
				Name:       "gistloop-worker",
				Queue:      "gistloop-queue",
				Workflows:  []string{"SummarizeWorkflow", "SummarizeAllWorkflow", "EchoWorkflow"},
				Activities: []string{"RunSummarizerOneType", "GetAgentConfigs", "Echo"},
			},
		}
	}
}

// Validate checks the Temporal section.
func (c *TemporalConfig) Validate() error {
	for i, w := range c.Workers {
		if w.Queue == "" {
			return fmt.Errorf("temporal.workers[%d]: queue is required", i)
		}
	}
	return nil
}

// AuthConfig enables JWT bearer authentication on the HTTP API.
type AuthConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	JWKSURL  string `yaml:"jwks_url,omitempty" json:"jwks_url,omitempty"`
	Issuer   string `yaml:"issuer,omitempty" json:"issuer,omitempty"`
	Audience string `yaml:"audience,omitempty" json:"audience,omitempty"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Address     string        `yaml:"address,omitempty" json:"address,omitempty"`
	CORSOrigins []string      `yaml:"cors_origins,omitempty" json:"cors_origins,omitempty"`
	Auth        *AuthConfig   `yaml:"auth,omitempty" json:"auth,omitempty"`
	SyncTimeout time.Duration `yaml:"sync_timeout,omitempty" json:"sync_timeout,omitempty"`
}

// SetDefaults applies server defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.SyncTimeout == 0 {
		c.SyncTimeout = 5 * time.Minute
	}
}

// Validate checks the server section.
func (c *ServerConfig) Validate() error {
	if c.Auth != nil && c.Auth.Enabled {
		if c.Auth.JWKSURL == "" {
			return fmt.Errorf("server.auth: jwks_url is required when auth is enabled")
		}
	}
	return nil
}

// StorageConfig configures the S3-compatible object store for uploads.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Region        string `yaml:"region,omitempty" json:"region,omitempty"`
	Bucket        string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Prefix        string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	AccessKey     string `yaml:"access_key,omitempty" json:"access_key,omitempty"`
	SecretKey     string `yaml:"secret_key,omitempty" json:"secret_key,omitempty"`
	UseSSL        *bool  `yaml:"use_ssl,omitempty" json:"use_ssl,omitempty"`
	PublicBaseURL string `yaml:"public_base_url,omitempty" json:"public_base_url,omitempty"`
}

// SetDefaults applies storage defaults.
func (c *StorageConfig) SetDefaults() {
	if c.UseSSL == nil {
		ssl := true
		c.UseSSL = &ssl
	}
}

// Validate checks the storage section. Storage is optional; when an endpoint
// is set the bucket must be set too.
func (c *StorageConfig) Validate() error {
	if c.Endpoint != "" && c.Bucket == "" {
		return fmt.Errorf("storage: bucket is required when endpoint is set")
	}
	return nil
}

// Enabled reports whether object storage is configured.
func (c *StorageConfig) Enabled() bool {
	return c.Endpoint != ""
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Endpoint     string  `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	SamplingRate float64 `yaml:"sampling_rate,omitempty" json:"sampling_rate,omitempty"`
	ServiceName  string  `yaml:"service_name,omitempty" json:"service_name,omitempty"`
}

// SetDefaults applies tracing defaults.
func (c *TracingConfig) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4317"
	}
	if c.SamplingRate == 0 {
		c.SamplingRate = 1.0
	}
	if c.ServiceName == "" {
		c.ServiceName = "gistloop"
	}
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// SetDefaults applies logging defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "simple"
	}
}
