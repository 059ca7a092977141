package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8765"`
	StaticDir  string  `yaml:"static-dir" env:"STATIC_DIR" env-default:"./web"`
	Storage    Storage `yaml:"storage"`
	Agent      Agent   `yaml:"agent"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	FilePath   string `yaml:"file-path" env:"STORAGE_FILE_PATH" env-default:"q_table.gob"`
	SQLitePath string `yaml:"sqlite-path" env:"STORAGE_SQLITE_PATH" env-default:"q_table.db"`
	TableName  string `yaml:"table-name" env:"STORAGE_TABLE_NAME" env-default:"default"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Agent struct {
	Alpha           float64 `yaml:"alpha" env-default:"0.5"`
	Gamma           float64 `yaml:"gamma" env-default:"0.9"`
	Epsilon         float64 `yaml:"epsilon" env-default:"0.05"`
	Episodes        int     `yaml:"episodes" env:"AGENT_EPISODES" env-default:"50000"`
	LearnedMoveRate float64 `yaml:"learned-move-rate" env-default:"0.1"`
	ProgressWindow  int     `yaml:"progress-window" env-default:"1000"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
