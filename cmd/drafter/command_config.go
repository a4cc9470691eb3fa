package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"drafter/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string                `json:"config_path" toml:"config_path"`
	Server     effectiveServerConfig `json:"server" toml:"server"`
	Export     effectiveExportConfig `json:"export" toml:"export"`
	Logging    effectiveLogConfig    `json:"logging" toml:"logging"`
	UI         effectiveUIConfig     `json:"ui" toml:"ui"`
}

type effectiveServerConfig struct {
	Address string `json:"address" toml:"address"`
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveExportConfig struct {
	Dir string `json:"dir" toml:"dir"`
}

type effectiveLogConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveUIConfig struct {
	Markdown bool `json:"markdown" toml:"markdown"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*defaults)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(defaults bool) (configOutput, error) {
	path, err := config.SettingsPath()
	if err != nil {
		return configOutput{}, err
	}
	settings := config.DefaultSettings()
	if !defaults {
		settings, err = config.LoadSettings()
		if err != nil {
			return configOutput{}, err
		}
	}
	exportDir, err := settings.ExportDir()
	if err != nil {
		return configOutput{}, err
	}
	return configOutput{
		ConfigPath: path,
		Server: effectiveServerConfig{
			Address: settings.Server.Address,
			BaseURL: settings.ServerBaseURL(),
		},
		Export:  effectiveExportConfig{Dir: exportDir},
		Logging: effectiveLogConfig{Level: settings.LogLevel()},
		UI:      effectiveUIConfig{Markdown: settings.MarkdownEnabled()},
	}, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
