package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host        string `env:"HOST"`
	Port        int    `env:"PORT,default=3000" validate:"min=1,max=65535"`
	LogLevel    string `env:"LOG_LEVEL,default=info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat   string `env:"LOG_FORMAT,default=console" validate:"oneof=console json"`
	MetricsAddr string `env:"METRICS_ADDR" validate:"omitempty,hostname_port"`

	SendQueueSize     int `env:"SEND_QUEUE_SIZE,default=64" validate:"min=1"`
	MaxMessageBytes   int `env:"MAX_MESSAGE_BYTES,default=65536" validate:"min=512"`
	MessagesPerSecond int `env:"MESSAGES_PER_SECOND,default=50" validate:"min=1"`
	MessageBurst      int `env:"MESSAGE_BURST,default=100" validate:"min=1"`

	WriteWait       time.Duration `env:"WRITE_WAIT,default=10s" validate:"gt=0"`
	PongWait        time.Duration `env:"PONG_WAIT,default=60s" validate:"gt=0"`
	PingInterval    time.Duration `env:"PING_INTERVAL,default=25s" validate:"gt=0,ltfield=PongWait"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
}

var validate = validator.New()

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return FromEnvSet(es)
}

func FromEnvSet(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
