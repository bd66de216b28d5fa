package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/gistloop/gistloop/pkg/config"
)

// ValidateCmd checks that a configuration file loads and validates.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI) error {
	if cli.Config == "" {
		return fmt.Errorf("--config is required for validate")
	}
	cfg, err := config.LoadFile(context.Background(), cli.Config)
	if err != nil {
		return err
	}

	fmt.Printf("Configuration OK: %s\n", cli.Config)
	fmt.Printf("  name:     %s\n", cfg.Name)
	fmt.Printf("  agents:   %d\n", len(cfg.Agents))
	fmt.Printf("  aliases:  %d\n", len(cfg.Aliases))
	fmt.Printf("  workers:  %d\n", len(cfg.Temporal.Workers))
	fmt.Printf("  temporal: %s/%s\n", cfg.Temporal.HostPort, cfg.Temporal.Namespace)
	return nil
}

// SchemaCmd generates the JSON Schema of the configuration file.
type SchemaCmd struct {
	Compact bool `short:"c" help:"Compact JSON output (no indentation)."`
}

func (c *SchemaCmd) Run(cli *CLI) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "gistloop Configuration Schema"
	schema.Description = "Configuration schema for the gistloop summarization service"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	enc := json.NewEncoder(os.Stdout)
	if !c.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(schema)
}
