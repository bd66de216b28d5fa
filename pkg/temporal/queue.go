package temporal

import "github.com/gistloop/gistloop/pkg/config"

const defaultQueue = "gistloop-queue"

// TaskQueue picks the queue workflow starts are routed to: the first worker
// that registers workflows, else the first worker, else the default queue.
func TaskQueue(cfg *config.TemporalConfig) string {
	for _, w := range cfg.Workers {
		if len(w.Workflows) > 0 {
			return w.Queue
		}
	}
	if len(cfg.Workers) > 0 {
		return cfg.Workers[0].Queue
	}
	return defaultQueue
}
