// Package config предоставляет структуры и функцию для загрузки конфигурации сервиса.
//
// Значения берутся из переменных окружения; если задан CONFIG_PATH, сначала читается
// YAML-файл, а переменные окружения переопределяют его значения.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Account    `yaml:"account"`
	JWTToken   `yaml:"jwttoken"`
	InfluxDB   `yaml:"influxdb"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Account учетная запись, создаваемая при старте сервиса.
type Account struct {
	Username string `yaml:"username" env:"NICO_USERNAME"`
	Password string `yaml:"password" env:"NICO_PASSWORD"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"JWT_SECRET"`
}

// InfluxDB параметры подключения к хранилищу временных рядов.
type InfluxDB struct {
	InfluxHost    string        `yaml:"host" env:"INFLUXDB_HOST"`
	InfluxOrg     string        `yaml:"org" env:"INFLUXDB_ORG"`
	InfluxToken   string        `yaml:"token" env:"INFLUXDB_TOKEN"`
	InfluxBucket  string        `yaml:"bucket" env:"INFLUXDB_BUCKET"`
	TimeoutInflux time.Duration `yaml:"timeout" env:"INFLUXDB_TIMEOUT" env-default:"5s"`
}

// MissingEnvError сообщает об отсутствии обязательного значения конфигурации.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Name)
}

// Load загружает конфигурацию. В отличие от паники при старте, ошибка возвращается
// вызывающему коду, и решение о завершении процесса принимает main.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read env: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет наличие обязательных значений в порядке их объявления.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"NICO_USERNAME", c.Username},
		{"NICO_PASSWORD", c.Password},
		{"JWT_SECRET", c.JWTSecretKey},
		{"INFLUXDB_HOST", c.InfluxHost},
		{"INFLUXDB_ORG", c.InfluxOrg},
		{"INFLUXDB_TOKEN", c.InfluxToken},
		{"INFLUXDB_BUCKET", c.InfluxBucket},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingEnvError{Name: r.name}
		}
	}
	return nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Account:\n"+
			"  Username: %s\n"+
			"  Password: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"InfluxDB:\n"+
			"  Host: %s\n"+
			"  Org: %s\n"+
			"  Token: %s\n"+
			"  Bucket: %s\n"+
			"  Timeout: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Username,
		mask(c.Password),
		mask(c.JWTSecretKey),
		c.InfluxHost,
		c.InfluxOrg,
		mask(c.InfluxToken),
		c.InfluxBucket,
		c.TimeoutInflux,
	)
}
