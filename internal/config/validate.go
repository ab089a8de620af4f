package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Endpoint URLs are allowed to
// be absent or placeholders here; the fetch and log layers short-circuit on
// them per call so that offline commands keep working.
func (c *Config) Validate() error {
	if err := ensurePositiveMap(map[string]int{
		"service.request_timeout": c.Service.RequestTimeout,
		"service.bridge_timeout":  c.Service.BridgeTimeout,
		"poll.interval":           c.Poll.Interval,
		"poll.timeout":            c.Poll.Timeout,
	}); err != nil {
		return err
	}
	if c.Poll.Timeout < c.Poll.Interval {
		return errors.New("poll.timeout must be greater than or equal to poll.interval")
	}
	if c.Estimator.MaxDelayMS < 0 {
		return errors.New("estimator.max_delay_ms must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
