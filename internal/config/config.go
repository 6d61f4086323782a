package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"suicidestats/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Charts ChartsConfig
	Log    LogConfig
}

// DataConfig selects the input table and the country under analysis
type DataConfig struct {
	File    string `env:"DATA_FILE" validate:"required"`
	Country string `env:"COUNTRY" validate:"required"`
}

// ChartsConfig holds chart rendering settings.
// Field rules apply only while Enabled is set.
type ChartsConfig struct {
	Enabled   bool    `env:"CHARTS_ENABLED"`
	OutputDir string  `env:"CHART_DIR" validate:"required"`
	WidthCM   float64 `env:"CHART_WIDTH_CM" validate:"gt=0"`
	HeightCM  float64 `env:"CHART_HEIGHT_CM" validate:"gt=0"`
	Workers   int     `env:"CHART_WORKERS" validate:"gte=1"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL"`
}

const (
	DefaultDataFile = "master.csv"
	DefaultCountry  = "Puerto Rico"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:   *loadDataConfig(),
		Charts: *loadChartsConfig(),
		Log:    LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:    strings.TrimSpace(getEnvOrDefault("DATA_FILE", DefaultDataFile)),
		Country: getEnvOrDefault("COUNTRY", DefaultCountry),
	}
}

func loadChartsConfig() *ChartsConfig {
	return &ChartsConfig{
		Enabled:   getEnvBoolOrDefault("CHARTS_ENABLED", true),
		OutputDir: getEnvOrDefault("CHART_DIR", "charts"),
		WidthCM:   getEnvFloatOrDefault("CHART_WIDTH_CM", 25),
		HeightCM:  getEnvFloatOrDefault("CHART_HEIGHT_CM", 15),
		Workers:   getEnvIntOrDefault("CHART_WORKERS", 4),
	}
}

var validate = newValidator()

// newValidator reports struct fields by their environment variable name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func validateConfig(config *Config) error {
	if err := checkStruct(config.Data); err != nil {
		return err
	}
	if strings.TrimSpace(config.Data.Country) == "" {
		return errors.ConfigInvalid("COUNTRY is required")
	}
	if config.Charts.Enabled {
		return checkStruct(config.Charts)
	}
	return nil
}

// checkStruct runs the validate tags of s and reports the first violation
func checkStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Param() != "" {
			return errors.ConfigInvalid(fmt.Sprintf("%s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
		return errors.ConfigInvalid(fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.Wrap(err, "configuration check failed")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
