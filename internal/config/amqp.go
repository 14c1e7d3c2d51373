package config

type AMQPConfig struct {
	URL   string
	Queue string
}

// LoadAMQPConfig reads RABBITMQ_URL (or AMQP_URL) and NOTIFY_QUEUE. An empty
// URL disables publishing.
func LoadAMQPConfig() *AMQPConfig {
	url := getEnv("RABBITMQ_URL", "")
	if url == "" {
		url = getEnv("AMQP_URL", "")
	}
	return &AMQPConfig{
		URL:   url,
		Queue: getEnv("NOTIFY_QUEUE", "swingbooking.events"),
	}
}

func (c *AMQPConfig) Enabled() bool {
	return c.URL != ""
}
