package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Defaults applied when neither the settings file nor the environment
// sets a key.
const (
	DefaultBaseURL  = "http://localhost:8000/api/v1"
	DefaultTimeout  = 10 * time.Second
	DefaultListID   = "@default"
	DefaultPageSize = 8
)

// Settings holds user-tunable settings.
type Settings struct {
	Backend string         `mapstructure:"backend"`
	API     APISettings    `mapstructure:"api"`
	Google  GoogleSettings `mapstructure:"google"`
	UI      UISettings     `mapstructure:"ui"`
}

// APISettings configures the REST backend.
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GoogleSettings configures the Google Tasks backend.
type GoogleSettings struct {
	ListID string `mapstructure:"list_id"`
}

// UISettings configures presentation.
type UISettings struct {
	PageSize int `mapstructure:"page_size"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendREST,
		API:     APISettings{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Google:  GoogleSettings{ListID: DefaultListID},
		UI:      UISettings{PageSize: DefaultPageSize},
	}
}

// LoadSettings reads SettingsFile from dir if present. Env var overrides
// use prefix TASKDECK_ (TASKDECK_API_BASE_URL, TASKDECK_BACKEND, ...).
func LoadSettings(dir string) (Settings, error) {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("google.list_id", d.Google.ListID)
	v.SetDefault("ui.page_size", d.UI.PageSize)

	v.SetConfigFile(filepath.Join(dir, SettingsFile))
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings that would otherwise fail later in confusing ways.
func (s Settings) Validate() error {
	switch s.Backend {
	case BackendREST, BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", s.Backend)
	}
	if s.UI.PageSize < 1 {
		return fmt.Errorf("invalid ui.page_size: %d", s.UI.PageSize)
	}
	return nil
}
