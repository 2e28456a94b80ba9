package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyUserName         = "user.name"
	KeySurchargePercent = "user.surcharge_percent"
	KeyLanguage         = "user.language"
	KeyDBPath           = "storage.db"
)

// Config holds the user settings every export and reconciliation call
// receives explicitly. There is no mutable settings singleton; commands load
// a Config once and pass it down.
type Config struct {
	User    UserConfig    `mapstructure:"user" validate:"required"`
	Storage StorageConfig `mapstructure:"storage"`
}

type UserConfig struct {
	Name             string  `mapstructure:"name" validate:"required"`
	SurchargePercent float64 `mapstructure:"surcharge_percent" validate:"gte=0,lte=200"`
	Language         string  `mapstructure:"language" validate:"oneof=de en hr"`
}

type StorageConfig struct {
	DB string `mapstructure:"db"`
}

// SetDefaults sets default values if not provided.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySurchargePercent, 0)
	v.SetDefault(KeyLanguage, "de")
	v.SetDefault(KeyDBPath, "./liftec.db")
}

// LoadAndValidate loads config from Viper and validates it.
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# liftec configuration
user:
  name: "Max Mustermann"
  surcharge_percent: 80
  language: de

storage:
  db: "./liftec.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}
