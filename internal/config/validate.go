package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if c.Engine.MaxEntriesPerReplace <= 0 {
		return fmt.Errorf("engine.max_entries_per_replace must be > 0 (got %d)", c.Engine.MaxEntriesPerReplace)
	}
	if c.Engine.MaxMetricsPerEntry <= 0 {
		return fmt.Errorf("engine.max_metrics_per_entry must be > 0 (got %d)", c.Engine.MaxMetricsPerEntry)
	}

	return nil
}
