package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultEnvFile    = ".env"
)

type ServerConfig struct {
	Port int    `yaml:"port" envconfig:"PORT"`
	Host string `yaml:"host" envconfig:"HOST"`
	Env  string `yaml:"env" envconfig:"NODE_ENV"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url" envconfig:"DATABASE_URL"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret" envconfig:"JWT_SECRET"`
	ExpiresIn string `yaml:"expires_in" envconfig:"JWT_EXPIRES_IN"`
}

type SecurityConfig struct {
	BcryptRounds int `yaml:"bcrypt_rounds" envconfig:"BCRYPT_ROUNDS_HASHING"`
}

type OTPConfig struct {
	Length    int    `yaml:"length" envconfig:"OTP_LENGTH"`
	ExpiresIn string `yaml:"expires_in" envconfig:"OTP_EXPIRES_IN"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" envconfig:"MAIL_HOST"`
	SMTPPort     int    `yaml:"smtp_port" envconfig:"MAIL_PORT"`
	SMTPUser     string `yaml:"smtp_user" envconfig:"MAIL_USER"`
	SMTPPassword string `yaml:"smtp_password" envconfig:"MAIL_PASSWORD"`
	FromEmail    string `yaml:"from_email" envconfig:"MAIL_FROM"`
}

type I18nConfig struct {
	FallbackLanguage string `yaml:"fallback_language" envconfig:"I18N_FALLBACK_LANGUAGE"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir" envconfig:"RESOURCES_ROOT"`
}

// LogConfig holds the console level. Early-log buffering is decided by the
// LOG_BUFFER environment variable alone, because the logger is built before
// this config is loaded.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// Config is resolved from defaults, then config.yaml, then .env and the
// process environment. Environment variables use their bare names (PORT,
// JWT_SECRET, ...); the section-prefixed form (SERVER_PORT) also works.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Security SecurityConfig `yaml:"security"`
	OTP      OTPConfig      `yaml:"otp"`
	Email    EmailConfig    `yaml:"email"`
	I18n     I18nConfig     `yaml:"i18n"`
	Files    FilesConfig    `yaml:"files"`
	Log      LogConfig      `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Server.Host = "localhost"
	cfg.Server.Env = "development"
	cfg.JWT.ExpiresIn = "1d"
	cfg.Security.BcryptRounds = 10
	cfg.OTP.Length = 6
	cfg.OTP.ExpiresIn = "5m"
	cfg.Email.SMTPHost = "localhost"
	cfg.Email.SMTPPort = 1025
	cfg.Email.FromEmail = "TodoList <dev@todolist.com.br>"
	cfg.I18n.FallbackLanguage = "en-US"
	cfg.Files.RootDir = "."
	cfg.Log.Level = "debug"
	return cfg
}

// Load reads the optional YAML file and .env file, then applies the
// environment. Missing files are not an error.
func Load(yamlPath, envFile string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		f, err := os.Open(yamlPath)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", yamlPath, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("open %s: %w", yamlPath, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load(DefaultConfigPath, DefaultEnvFile)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.OTP.Length <= 0 {
		return fmt.Errorf("OTP_LENGTH must be positive, got %d", c.OTP.Length)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("PORT must be positive, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// APIEntryPoint is the public base URL used in links sent to users.
func (c *Config) APIEntryPoint() string {
	scheme := "http"
	if c.IsProduction() {
		scheme = "https"
	}
	host := c.Server.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Server.Port
	if port == 0 {
		port = 3000
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}
