package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort  string      `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis       Redis       `yaml:"redis"`
	Game        Game        `yaml:"game"`
	Gateway     Gateway     `yaml:"gateway"`
	Persistence Persistence `yaml:"persistence"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	ChallengeTimeout       time.Duration `yaml:"challenge-timeout" env:"GAME_CHALLENGE_TIMEOUT" env-default:"30s"`
	ChallengeSweepInterval time.Duration `yaml:"challenge-sweep-interval" env:"GAME_CHALLENGE_SWEEP_INTERVAL" env-default:"5s"`
	TeardownDelay          time.Duration `yaml:"teardown-delay" env:"GAME_TEARDOWN_DELAY" env-default:"10s"`
	InboxSize              int           `yaml:"inbox-size" env:"GAME_INBOX_SIZE" env-default:"256"`
	BotName                string        `yaml:"bot-name" env:"GAME_BOT_NAME" env-default:"Computer"`
}

type Gateway struct {
	MessagesPerSecond float64       `yaml:"messages-per-second" env:"GATEWAY_MESSAGES_PER_SECOND" env-default:"10"`
	Burst             int           `yaml:"burst" env:"GATEWAY_BURST" env-default:"20"`
	SendBuffer        int           `yaml:"send-buffer" env:"GATEWAY_SEND_BUFFER" env-default:"32"`
	WriteTimeout      time.Duration `yaml:"write-timeout" env:"GATEWAY_WRITE_TIMEOUT" env-default:"3s"`
	OriginPatterns    []string      `yaml:"origin-patterns" env:"GATEWAY_ORIGIN_PATTERNS" env-separator:","`
}

type Persistence struct {
	QueueSize int           `yaml:"queue-size" env:"PERSISTENCE_QUEUE_SIZE" env-default:"256"`
	Timeout   time.Duration `yaml:"timeout" env:"PERSISTENCE_TIMEOUT" env-default:"2s"`
	MatchTTL  time.Duration `yaml:"match-ttl" env:"PERSISTENCE_MATCH_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
