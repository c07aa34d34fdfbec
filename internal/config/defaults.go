package config

const (
	defaultDataDir     = "~/.local/share/jobindex/data"
	defaultLogDir      = "~/.local/share/jobindex/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLockTimeout = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Scan: Scan{
			FailFast:    false,
			LockTimeout: defaultLockTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
