package config

const (
	defaultDataDir      = "~/.local/share/maldreth"
	defaultLogDir       = "~/.local/share/maldreth/logs"
	defaultBind         = "127.0.0.1:8151"
	defaultLayoutStyle  = "circle"
	defaultLayoutRadius = 1.0
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Server: Server{
			Bind: defaultBind,
		},
		Layout: Layout{
			Style:  defaultLayoutStyle,
			Radius: defaultLayoutRadius,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
