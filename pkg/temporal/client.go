// Package temporal wires the Temporal client and workers from configuration.
package temporal

import (
	"fmt"
	"log/slog"
	"sync"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"

	"github.com/gistloop/gistloop/pkg/config"
)

var (
	mu     sync.Mutex
	shared client.Client
)

// Client returns the process-wide Temporal client, dialing it on first use.
func Client(cfg *config.TemporalConfig) (client.Client, error) {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		return shared, nil
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    tlog.NewStructuredLogger(slog.Default()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to temporal at %s: %w", cfg.HostPort, err)
	}

	slog.Info("Connected to Temporal", "host_port", cfg.HostPort, "namespace", cfg.Namespace)
	shared = c
	return shared, nil
}

// Close releases the shared client.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		shared.Close()
		shared = nil
	}
}
