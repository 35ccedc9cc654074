// Package config provides configuration management for the forge application.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/forgecraft/credentialforge/internal/auditlog"
	"github.com/forgecraft/credentialforge/internal/logutil"
	"gopkg.in/yaml.v3"
)

// Manager is responsible for loading and providing application configuration.
type Manager struct {
	logger        logutil.LoggerInterface
	auditLogger   auditlog.StructuredLogger
	userConfigDir string
	sysConfigDirs []string
	config        *AppConfig
}

// NewManager creates a new configuration manager.
// It accepts a logger for user-facing messages and an optional audit logger for structured logging.
// If auditLogger is nil, a no-op implementation is used.
func NewManager(logger logutil.LoggerInterface, auditLogger ...auditlog.StructuredLogger) *Manager {
	userConfigDir := userConfigDirPath()
	sysConfigDirs := systemConfigDirPaths()

	var structLogger auditlog.StructuredLogger
	if len(auditLogger) > 0 && auditLogger[0] != nil {
		structLogger = auditLogger[0]
	} else {
		structLogger = auditlog.NewNoopStructuredLogger()
	}

	return &Manager{
		logger:        logger,
		auditLogger:   structLogger,
		userConfigDir: userConfigDir,
		sysConfigDirs: sysConfigDirs,
		config:        DefaultConfig(),
	}
}

// userConfigDirPath returns the platform config directory for this app,
// falling back to ~/.config/credentialforge when os.UserConfigDir fails.
func userConfigDirPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			base = filepath.Join(home, ".config")
		} else {
			base = "."
		}
	}
	return filepath.Join(base, AppName)
}

// systemConfigDirPaths returns candidate system-wide configuration
// directories, in lowest-to-highest precedence order.
func systemConfigDirPaths() []string {
	return []string{filepath.Join("/etc", AppName)}
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() *AppConfig {
	return m.config
}

// GetUserConfigDir returns the user-specific configuration directory.
func (m *Manager) GetUserConfigDir() string {
	return m.userConfigDir
}

// GetSystemConfigDirs returns the system-wide configuration directories.
func (m *Manager) GetSystemConfigDirs() []string {
	return m.sysConfigDirs
}

// GetConfigDirs returns all configuration directories.
func (m *Manager) GetConfigDirs() ConfigDirectories {
	return ConfigDirectories{User: m.userConfigDir, System: m.sysConfigDirs}
}

// LoadFromFiles loads configuration from files (user, system) according to precedence.
// System directories are read first (lowest precedence), then the user
// directory, so a value present in both is taken from the user file.
func (m *Manager) LoadFromFiles() error {
	if m.auditLogger == nil {
		m.auditLogger = auditlog.NewNoopStructuredLogger()
	}

	m.auditLogger.Log(auditlog.AuditEvent{
		Level:     "INFO",
		Operation: "ConfigLoadStart",
		Message:   "Starting configuration loading process",
		Metadata: map[string]interface{}{
			"user_config_dir":          m.userConfigDir,
			"system_config_dirs_count": len(m.sysConfigDirs),
		},
	})

	searchDirs := append(append([]string{}, m.sysConfigDirs...), m.userConfigDir)

	cfg := DefaultConfig()
	found := false
	var loadedFrom string

	for _, dir := range searchDirs {
		path := filepath.Join(dir, ConfigFilename)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "ERROR", Operation: "ConfigLoadError",
				Message: "Error reading configuration file",
				Error:   &auditlog.ErrorDetails{Message: err.Error()},
			})
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "ERROR", Operation: "ConfigUnmarshalError",
				Message:  "Failed to unmarshal configuration data",
				Error:    &auditlog.ErrorDetails{Message: err.Error()},
				Metadata: map[string]interface{}{"file_path": path},
			})
			return fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}

		found = true
		loadedFrom = path
		m.logger.Debug("Loaded configuration from %s", path)
	}

	if !found {
		m.logger.Info("No configuration file found. Initializing default configuration...")
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "INFO", Operation: "ConfigFileNotFound",
			Message:  "No configuration file found, initializing defaults",
			Metadata: map[string]interface{}{"search_paths": searchDirs},
		})

		if err := m.EnsureConfigDirs(); err != nil {
			m.logger.Warn("Failed to create configuration directories: %v. Using default settings.", err)
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "WARN", Operation: "ConfigDirCreationError",
				Message: "Failed to create configuration directories",
				Error:   &auditlog.ErrorDetails{Message: err.Error()},
			})
			m.config = cfg
			return nil
		}

		if err := m.WriteDefaultConfig(); err != nil {
			m.logger.Warn("Failed to write default configuration file: %v. Using default settings.", err)
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "WARN", Operation: "ConfigFileWriteError",
				Message: "Failed to write default configuration file",
				Error:   &auditlog.ErrorDetails{Message: err.Error()},
			})
		} else {
			m.displayInitializationMessage()
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "INFO", Operation: "DefaultConfigCreated",
				Message: "Default configuration file created successfully",
			})
		}

		m.config = cfg
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "INFO", Operation: "ConfigLoadComplete",
			Message: "Configuration loading process completed with defaults",
		})
		return nil
	}

	m.config = cfg
	m.auditLogger.Log(auditlog.AuditEvent{
		Level: "INFO", Operation: "ConfigLoadComplete",
		Message: "Configuration loading process completed successfully",
		Metadata: map[string]interface{}{
			"config_file": loadedFrom,
			"output_dir":  cfg.OutputDir,
			"model":       cfg.Neural.DefaultModel,
		},
	})
	return nil
}

// MergeWithFlags merges loaded configuration with command-line flags.
// cliFlags keys match AppConfig's "flag" struct tags (e.g. "output-dir").
func (m *Manager) MergeWithFlags(cliFlags map[string]interface{}) error {
	if m.auditLogger == nil {
		m.auditLogger = auditlog.NewNoopStructuredLogger()
	}

	validFlagCount := 0
	for _, v := range cliFlags {
		if v != nil {
			if s, ok := v.(string); !(ok && s == "") {
				validFlagCount++
			}
		}
	}

	m.auditLogger.Log(auditlog.AuditEvent{
		Level: "INFO", Operation: "MergeFlags",
		Message:  "Merging CLI flags with configuration",
		Metadata: map[string]interface{}{"flag_count": validFlagCount},
	})

	configVal := reflect.ValueOf(m.config).Elem()
	configType := configVal.Type()
	applied := make(map[string]interface{})

	for flagName, flagValue := range cliFlags {
		if flagValue == nil {
			continue
		}
		if s, ok := flagValue.(string); ok && s == "" {
			continue
		}

		found := false
		for i := 0; i < configType.NumField(); i++ {
			field := configType.Field(i)
			if field.Tag.Get("flag") == flagName {
				fieldVal := configVal.Field(i)
				if fieldVal.CanSet() {
					setValue(fieldVal, flagValue)
					applied[flagName] = flagValue
					found = true
					break
				}
			}
		}

		if !found {
			m.logger.Debug("Flag '%s' does not map to any config field", flagName)
			m.auditLogger.Log(auditlog.AuditEvent{
				Level: "DEBUG", Operation: "FlagNotMapped",
				Message:  "Flag does not map to any configuration field",
				Metadata: map[string]interface{}{"flag_name": flagName},
			})
		}
	}

	m.auditLogger.Log(auditlog.AuditEvent{
		Level: "INFO", Operation: "MergeFlagsComplete",
		Message: "CLI flags successfully merged with configuration",
		Metadata: map[string]interface{}{
			"flags_provided": validFlagCount,
			"flags_applied":  len(applied),
		},
	})
	return nil
}

// setValue sets a reflected Value to the given interface{} value.
func setValue(field reflect.Value, value interface{}) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		if str, ok := value.(string); ok {
			field.SetString(str)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, ok := value.(int); ok {
			field.SetInt(int64(i))
		} else if i64, ok := value.(int64); ok {
			field.SetInt(i64)
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := value.(float64); ok {
			field.SetFloat(f)
		}
	case reflect.Slice:
		if strSlice, ok := value.([]string); ok && field.Type().Elem().Kind() == reflect.String {
			newSlice := reflect.MakeSlice(field.Type(), len(strSlice), len(strSlice))
			for i, str := range strSlice {
				newSlice.Index(i).SetString(str)
			}
			field.Set(newSlice)
		}
	}
}

// EnsureConfigDirs creates necessary configuration directories if they don't exist.
func (m *Manager) EnsureConfigDirs() error {
	if err := os.MkdirAll(m.userConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create user config directory: %w", err)
	}
	return nil
}

// WriteDefaultConfig writes the default configuration to the user's config file.
func (m *Manager) WriteDefaultConfig() error {
	if m.auditLogger == nil {
		m.auditLogger = auditlog.NewNoopStructuredLogger()
	}

	configPath := filepath.Join(m.userConfigDir, ConfigFilename)

	m.auditLogger.Log(auditlog.AuditEvent{
		Level: "INFO", Operation: "WriteDefaultConfig",
		Message:  "Writing default configuration file",
		Metadata: map[string]interface{}{"file_path": configPath},
	})

	if _, err := os.Stat(configPath); err == nil {
		m.logger.Debug("Config file already exists at %s, skipping default creation", configPath)
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "INFO", Operation: "ConfigFileExists",
			Message:  "Configuration file already exists, skipping default creation",
			Metadata: map[string]interface{}{"file_path": configPath},
		})
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "ERROR", Operation: "ConfigFileCheckError",
			Message: "Failed to check if configuration file exists",
			Error:   &auditlog.ErrorDetails{Message: err.Error()},
		})
		return fmt.Errorf("failed to check for config file: %w", err)
	}

	if err := os.MkdirAll(m.userConfigDir, 0o755); err != nil {
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "ERROR", Operation: "ConfigDirCreationError",
			Message: "Failed to create configuration directory",
			Error:   &auditlog.ErrorDetails{Message: err.Error()},
		})
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		m.auditLogger.Log(auditlog.AuditEvent{
			Level: "ERROR", Operation: "ConfigFileWriteError",
			Message:  "Failed to write default configuration file",
			Error:    &auditlog.ErrorDetails{Message: err.Error()},
			Metadata: map[string]interface{}{"file_path": configPath},
		})
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.logger.Debug("Created default configuration at %s", configPath)
	m.auditLogger.Log(auditlog.AuditEvent{
		Level: "INFO", Operation: "DefaultConfigWritten",
		Message:  "Default configuration file successfully written",
		Metadata: map[string]interface{}{"file_path": configPath},
	})
	return nil
}

// displayInitializationMessage prints information about the automatic config creation.
func (m *Manager) displayInitializationMessage() {
	configPath := filepath.Join(m.userConfigDir, ConfigFilename)
	defaults := DefaultConfig()

	m.logger.Printf("✓ credentialforge configuration initialized automatically.")
	m.logger.Printf("  Created default configuration file at: %s", configPath)
	m.logger.Printf("  Applying default settings:")
	m.logger.Printf("    - Output Directory: %s", defaults.OutputDir)
	m.logger.Printf("    - Neural Model: %s", defaults.Neural.DefaultModel)
	m.logger.Printf("    - Log Level: %s", defaults.LogLevel)
	m.logger.Printf("    - Audit Logging: %v", defaults.AuditLogEnabled)
	m.logger.Printf("  You can customize these settings by editing the file.")
}
