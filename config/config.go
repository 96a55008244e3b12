package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// JWTConfig holds everything needed to mint and validate session tokens.
// The secret is never read from the YAML file, only from the environment.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secretKey"`
	Issuer    string        `mapstructure:"issuer"`
	Audience  string        `mapstructure:"audience"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"apiKey"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type ServerConfig struct {
	HTTPPort    string        `mapstructure:"HTTPPort"`
	MetricsPort string        `mapstructure:"metricsPort"`
	Timeout     time.Duration `mapstructure:"HTTPTimeout"`
}

type Config struct {
	Mode         string       `mapstructure:"mode"`
	Server       ServerConfig `mapstructure:"server"`
	JWT          JWTConfig    `mapstructure:"jwt"`
	Gemini       GeminiConfig `mapstructure:"gemini"`
	Repositories struct {
		Postgres PostgresConfig `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the file.
	v.AutomaticEnv()
	_ = v.BindEnv("jwt.secretKey", "JWT_SECRET_KEY")
	_ = v.BindEnv("gemini.apiKey", "GOOGLE_GEMINI_API_KEY")
	_ = v.BindEnv("repositories.postgres.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("repositories.postgres.host", "POSTGRES_HOST")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if config.JWT.TokenTTL <= 0 {
		config.JWT.TokenTTL = 72 * time.Hour
	}

	return config, nil
}

// Validate reports configuration that must be present before the server can
// start. A missing signing secret is fatal here rather than per-request.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt secret key is not configured (set JWT_SECRET_KEY)")
	}
	if c.JWT.Issuer == "" || c.JWT.Audience == "" {
		return fmt.Errorf("jwt issuer and audience must be configured")
	}
	return nil
}
