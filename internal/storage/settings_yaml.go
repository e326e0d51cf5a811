package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"breathflow/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	LengthMinutes  int  `yaml:"length_minutes"`
	InhaleSeconds  int  `yaml:"inhale_seconds"`
	HoldInSeconds  int  `yaml:"hold_in_seconds"`
	ExhaleSeconds  int  `yaml:"exhale_seconds"`
	HoldOutSeconds int  `yaml:"hold_out_seconds"`
	SoundEnabled   bool `yaml:"sound_enabled"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return loadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return saveSettingsFile(configPath, settings)
}

func loadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Clamped(), nil
}

func saveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		LengthMinutes:  int(settings.Length / time.Minute),
		InhaleSeconds:  int(settings.Inhale / time.Second),
		HoldInSeconds:  int(settings.HoldIn / time.Second),
		ExhaleSeconds:  int(settings.Exhale / time.Second),
		HoldOutSeconds: int(settings.HoldOut / time.Second),
		SoundEnabled:   settings.SoundOn,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.LengthMinutes > 0 {
		settings.Length = time.Duration(fileData.LengthMinutes) * time.Minute
	}
	if fileData.InhaleSeconds > 0 {
		settings.Inhale = time.Duration(fileData.InhaleSeconds) * time.Second
	}
	if fileData.ExhaleSeconds > 0 {
		settings.Exhale = time.Duration(fileData.ExhaleSeconds) * time.Second
	}

	// Holds are legitimately zero; take the stored value as is.
	settings.HoldIn = time.Duration(fileData.HoldInSeconds) * time.Second
	settings.HoldOut = time.Duration(fileData.HoldOutSeconds) * time.Second
	settings.SoundOn = fileData.SoundEnabled
}
