package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeService()
	c.normalizePoll()
	c.normalizeEstimator()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeService() {
	c.Service.AnalyzeURL = strings.TrimSpace(c.Service.AnalyzeURL)
	if c.Service.AnalyzeURL == "" {
		if value, ok := os.LookupEnv(analyzeURLEnv); ok {
			c.Service.AnalyzeURL = strings.TrimSpace(value)
		}
	}
	c.Service.LogURL = strings.TrimSpace(c.Service.LogURL)
	if c.Service.LogURL == "" {
		if value, ok := os.LookupEnv(logURLEnv); ok {
			c.Service.LogURL = strings.TrimSpace(value)
		}
	}
	if c.Service.RequestTimeout <= 0 {
		c.Service.RequestTimeout = defaultRequestTimeout
	}
	if c.Service.BridgeTimeout <= 0 {
		c.Service.BridgeTimeout = defaultBridgeTimeout
	}
}

func (c *Config) normalizePoll() {
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = defaultPollInterval
	}
	if c.Poll.Timeout <= 0 {
		c.Poll.Timeout = defaultPollTimeout
	}
}

func (c *Config) normalizeEstimator() {
	if c.Estimator.MaxDelayMS < 0 {
		c.Estimator.MaxDelayMS = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
