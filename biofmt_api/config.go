package biofmt_api

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultLevel               = LevelBasic
	DefaultMaxDiagnostics      = 100
	DefaultViewportBufferLines = 5000
)

// DefaultSettings returns the settings used when no settings file is given
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.defineMissing()
	return settings
}

// Read the settings file, cast it to its struct and validate
func LoadSettings(path string) (*Settings, error) {
	settingsFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the settings file: %w", err)
	}
	return ParseSettings(settingsFile)
}

// ParseSettings reads settings from YAML, absent values take their defaults
func ParseSettings(content []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse the settings file: %w", err)
	}

	settings.defineMissing()
	if err := settings.Check(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Define all missing settings
func (settings *Settings) defineMissing() {
	if settings.Validation.Level == "" {
		settings.Validation.Level = DefaultLevel
	}
	if settings.Validation.MaxDiagnostics == nil {
		maxDiagnostics := DefaultMaxDiagnostics
		settings.Validation.MaxDiagnostics = &maxDiagnostics
	}
	if settings.Lsp.ViewportBufferLines == nil {
		viewport := DefaultViewportBufferLines
		settings.Lsp.ViewportBufferLines = &viewport
	}
}

// Check validates the values of the settings
func (settings *Settings) Check() error {
	switch settings.Validation.Level {
	case LevelOff, LevelBasic, LevelStrict:
	default:
		return fmt.Errorf("%w '%s', must be one of: off, basic, strict", ErrUnknownLevel, settings.Validation.Level)
	}
	if settings.MaxDiagnostics() < 0 {
		return fmt.Errorf("validation.maxDiagnostics: %w", ErrNegativeSetting)
	}
	if settings.ViewportBufferLines() < 0 {
		return fmt.Errorf("lsp.viewportBufferLines: %w", ErrNegativeSetting)
	}
	return nil
}

// MaxDiagnostics returns the maximum amount of diagnostics per validation pass
func (settings *Settings) MaxDiagnostics() int {
	if settings.Validation.MaxDiagnostics == nil {
		return DefaultMaxDiagnostics
	}
	return *settings.Validation.MaxDiagnostics
}

// ViewportBufferLines returns the amount of lines validated per document
func (settings *Settings) ViewportBufferLines() int {
	if settings.Lsp.ViewportBufferLines == nil {
		return DefaultViewportBufferLines
	}
	return *settings.Lsp.ViewportBufferLines
}

// WithLevel returns a copy of the settings with another validation level
func (settings *Settings) WithLevel(level ValidationLevel) *Settings {
	copied := *settings
	copied.Validation.Level = level
	return &copied
}

// WithMaxDiagnostics returns a copy of the settings with another diagnostic maximum
func (settings *Settings) WithMaxDiagnostics(maxDiagnostics int) *Settings {
	copied := *settings
	copied.Validation.MaxDiagnostics = &maxDiagnostics
	return &copied
}

// WithViewportBufferLines returns a copy of the settings with another viewport
func (settings *Settings) WithViewportBufferLines(lines int) *Settings {
	copied := *settings
	copied.Lsp.ViewportBufferLines = &lines
	return &copied
}
