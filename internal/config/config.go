package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port           string `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
	SessionKeyFile string `yaml:"session_key_file"`
	Gemini         Gemini `yaml:"gemini"`
}

// Gemini selects the models used by the advisor.
type Gemini struct {
	TextModel   string  `yaml:"text_model"`
	SpeechModel string  `yaml:"speech_model"`
	Voice       string  `yaml:"voice"`
	ThinkBudget int32   `yaml:"thinking_budget"`
	Temperature float32 `yaml:"temperature"`
}

// Load builds the configuration from environment variables. When CONFIG_FILE
// names a YAML file its non-empty values override the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SessionKeyFile: getEnv("SESSION_KEY_FILE", ""),
		Gemini: Gemini{
			TextModel:   getEnv("GEMINI_TEXT_MODEL", "gemini-3-pro-preview"),
			SpeechModel: getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			Voice:       getEnv("GEMINI_VOICE", "Fenrir"),
			ThinkBudget: 2048,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	return cfg, nil
}

func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&c.Port, file.Port)
	setIf(&c.LogLevel, file.LogLevel)
	setIf(&c.SessionKeyFile, file.SessionKeyFile)
	setIf(&c.Gemini.TextModel, file.Gemini.TextModel)
	setIf(&c.Gemini.SpeechModel, file.Gemini.SpeechModel)
	setIf(&c.Gemini.Voice, file.Gemini.Voice)
	if file.Gemini.ThinkBudget > 0 {
		c.Gemini.ThinkBudget = file.Gemini.ThinkBudget
	}
	if file.Gemini.Temperature > 0 {
		c.Gemini.Temperature = file.Gemini.Temperature
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
