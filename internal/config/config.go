// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the server.
// These values are loaded from environment variables.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	ProjectID string `mapstructure:"GOOGLE_CLOUD_PROJECT"`
	DatasetID string `mapstructure:"BIGQUERY_DATASET_ID"`

	GeminiModelName     string `mapstructure:"GEMINI_MODEL_NAME"`
	GeminiAPIKey        string `mapstructure:"GEMINI_API_KEY"`
	UseVertexAI         bool   `mapstructure:"GOOGLE_GENAI_USE_VERTEXAI"`
	VertexAILocation    string `mapstructure:"GOOGLE_CLOUD_LOCATION"`
	DisableVAD          bool   `mapstructure:"DISABLE_VAD"`
	TranscriptionLocale string `mapstructure:"TRANSCRIPTION_LOCALE"`

	DemoUserID string `mapstructure:"DEMO_USER_ID"`

	AuditLogCapacity      int    `mapstructure:"AUDIT_LOG_CAPACITY"`
	AuditBucket           string `mapstructure:"AUDIT_ARCHIVE_BUCKET"`
	AuditFlushIntervalMin int    `mapstructure:"AUDIT_FLUSH_INTERVAL_MINUTES"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BIGQUERY_DATASET_ID", "bank_voice_assistant_dataset")
	viper.SetDefault("GEMINI_MODEL_NAME", "gemini-2.5-flash-live-preview")
	viper.SetDefault("TRANSCRIPTION_LOCALE", "hi-IN")
	viper.SetDefault("DEMO_USER_ID", "user123")
	viper.SetDefault("AUDIT_LOG_CAPACITY", 1000)
	viper.SetDefault("AUDIT_FLUSH_INTERVAL_MINUTES", 5)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("GOOGLE_CLOUD_PROJECT")
	_ = viper.BindEnv("BIGQUERY_DATASET_ID")
	_ = viper.BindEnv("GEMINI_MODEL_NAME")
	_ = viper.BindEnv("GEMINI_API_KEY")
	_ = viper.BindEnv("GOOGLE_GENAI_USE_VERTEXAI")
	_ = viper.BindEnv("GOOGLE_CLOUD_LOCATION")
	_ = viper.BindEnv("DISABLE_VAD")
	_ = viper.BindEnv("TRANSCRIPTION_LOCALE")
	_ = viper.BindEnv("DEMO_USER_ID")
	_ = viper.BindEnv("AUDIT_LOG_CAPACITY")
	_ = viper.BindEnv("AUDIT_ARCHIVE_BUCKET")
	_ = viper.BindEnv("AUDIT_FLUSH_INTERVAL_MINUTES")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	config.ProjectID = strings.TrimSpace(config.ProjectID)
	config.AuditBucket = strings.TrimSpace(config.AuditBucket)
	if config.AuditLogCapacity <= 0 {
		config.AuditLogCapacity = 1000
	}
	if config.AuditFlushIntervalMin <= 0 {
		config.AuditFlushIntervalMin = 5
	}

	return
}
