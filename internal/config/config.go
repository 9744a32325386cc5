package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env-default:"local"`
	DSN      string        `yaml:"dsn" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"1h"`
	Token    string        `yaml:"token_secret" env:"TOKEN_SECRET"`
	Session  string        `yaml:"session_secret" env:"SESSION_SECRET"`
	HTTP     HTTPConfig    `yaml:"http"`
	Redis    RedisConf     `yaml:"redis"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// OpenAIConfig holds settings for the content generation provider.
// The API key is read from the environment; a missing key is surfaced
// at call time, not at startup.
type OpenAIConfig struct {
	APIKey      string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL     string        `yaml:"base_url" env-default:"https://api.openai.com/v1"`
	Model       string        `yaml:"model" env-default:"gpt-4-turbo"`
	Temperature float64       `yaml:"temperature" env-default:"0.7"`
	MaxTokens   int           `yaml:"max_tokens" env-default:"3000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"120s"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
