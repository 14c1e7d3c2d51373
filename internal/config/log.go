package config

type LogConfig struct {
	Debug bool
	Dir   string
}

func LoadLogConfig() *LogConfig {
	return &LogConfig{
		Debug: getEnvBool("LOG_DEBUG", false),
		Dir:   getEnv("LOG_DIR", ""),
	}
}
