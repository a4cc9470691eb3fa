package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerAddress = "127.0.0.1:8000"

type Settings struct {
	Server  ServerSettings  `toml:"server"`
	Export  ExportSettings  `toml:"export"`
	Logging LoggingSettings `toml:"logging"`
	UI      UISettings      `toml:"ui"`
}

type ServerSettings struct {
	Address string `toml:"address"`
}

type ExportSettings struct {
	Dir string `toml:"dir"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

type UISettings struct {
	// Markdown toggles glamour rendering of section content. A nil value
	// means the default (enabled).
	Markdown *bool `toml:"markdown"`
}

func DefaultSettings() Settings {
	return Settings{
		Server:  ServerSettings{Address: defaultServerAddress},
		Logging: LoggingSettings{Level: "info"},
	}
}

func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func loadSettingsFromPath(path string) (Settings, error) {
	cfg := DefaultSettings()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// ServerBaseURL normalizes the configured address into an http base URL.
func (s Settings) ServerBaseURL() string {
	addr := strings.TrimSpace(s.Server.Address)
	if addr == "" {
		addr = defaultServerAddress
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}
	return "http://" + strings.TrimRight(addr, "/")
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (s Settings) MarkdownEnabled() bool {
	if s.UI.Markdown == nil {
		return true
	}
	return *s.UI.Markdown
}

// ExportDir resolves the artifact directory, falling back to the data dir
// default and expanding a leading ~/.
func (s Settings) ExportDir() (string, error) {
	dir := strings.TrimSpace(s.Export.Dir)
	if dir == "" {
		return DefaultExportDir()
	}
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, dir[2:]), nil
	}
	return dir, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
