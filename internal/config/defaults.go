package config

const (
	defaultStateDir         = "~/.local/share/somscan"
	defaultLogDir           = "~/.local/share/somscan/logs"
	defaultRequestTimeout   = 15
	defaultBridgeTimeout    = 15
	defaultPollInterval     = 10
	defaultPollTimeout      = 120
	defaultEstimatorDelayMS = 2500
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	analyzeURLEnv           = "SOMSCAN_ANALYZE_URL"
	logURLEnv               = "SOMSCAN_LOG_URL"
)

// Default returns a Config populated with repository defaults. Endpoint URLs
// intentionally default to empty; they come from the config file or the
// SOMSCAN_ANALYZE_URL / SOMSCAN_LOG_URL environment variables.
func Default() Config {
	return Config{
		Service: Service{
			RequestTimeout: defaultRequestTimeout,
			BridgeTimeout:  defaultBridgeTimeout,
		},
		Poll: Poll{
			Interval: defaultPollInterval,
			Timeout:  defaultPollTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Estimator: Estimator{
			Enabled:    true,
			MaxDelayMS: defaultEstimatorDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
