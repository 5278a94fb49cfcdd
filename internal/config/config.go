package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Redis       Redis       `yaml:"redis"`
	UserService UserService `yaml:"user-service"`
	RoomService RoomService `yaml:"room-service"`
	GameService GameService `yaml:"game-service"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// UserService - the player ledger.
type UserService struct {
	Port string `yaml:"port" env:"USER_SERVICE_PORT" env-default:"8001"`
	URL  string `yaml:"url" env:"USER_SERVICE_URL" env-default:"http://localhost:8001"`
}

// RoomService - the room broker.
type RoomService struct {
	Port         string        `yaml:"port" env:"ROOM_SERVICE_PORT" env-default:"8002"`
	URL          string        `yaml:"url" env:"ROOM_SERVICE_URL" env-default:"http://localhost:8002"`
	StartTimeout time.Duration `yaml:"start-timeout" env:"ROOM_START_TIMEOUT" env-default:"5s"`
}

// GameService - the match engine and its websocket registry.
type GameService struct {
	Port            string        `yaml:"port" env:"GAME_SERVICE_PORT" env-default:"8003"`
	URL             string        `yaml:"url" env:"GAME_SERVICE_URL" env-default:"http://localhost:8003"`
	WebSocketURL    string        `yaml:"ws-url" env:"GAME_SERVICE_WS_URL" env-default:"ws://localhost:8003/ws"`
	ReportTimeout   time.Duration `yaml:"report-timeout" env:"GAME_REPORT_TIMEOUT" env-default:"3s"`
	ReportQueueSize int           `yaml:"report-queue-size" env:"GAME_REPORT_QUEUE_SIZE" env-default:"64"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yaml file and applies env overrides on top of it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// LoadEnv - builds the config from env and defaults only, for tools that run without config.yml.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func ListenAddr(port string) string {
	return ":" + port
}
