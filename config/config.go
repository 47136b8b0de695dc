package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// ConfigDirEnv names a directory searched before the default locations.
	ConfigDirEnv = "JOURNAL_CONFIG_DIR"

	defaultDatabasePath        = "journal.db"
	defaultBusyTimeout         = 5 * time.Second
	defaultBcryptCost          = 10
	defaultPasswordMinLength   = 8
	defaultTitleMaxLength      = 500
	defaultSearchFallbackLimit = 100
	defaultPageSize            = 10
	defaultPreferencesDir      = ".journal-preferences"
	defaultExportBucketURL     = "exports"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Journal configures entry validation and listing limits
	Journal *JournalConfig `json:"journal" yaml:"journal"`

	// Preferences configures the on-disk store for remembered sessions
	Preferences *PreferencesConfig `json:"preferences" yaml:"preferences"`

	// Export configures where rendered journal documents are written
	Export *ExportConfig `json:"export" yaml:"export"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DatabaseConfig defines the SQLite store configuration
type DatabaseConfig struct {
	// Path to the database file, or ":memory:" for a throwaway store
	Path        string        `json:"path" yaml:"path"`
	BusyTimeout time.Duration `json:"busyTimeout" yaml:"busyTimeout"`
	// Slow statements are logged as warnings by the gorm logger
	SlowThreshold time.Duration `json:"slowThreshold" yaml:"slowThreshold"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int `json:"bcryptCost" yaml:"bcryptCost"`
	PasswordMinLength int `json:"passwordMinLength" yaml:"passwordMinLength"`
}

// JournalConfig defines entry rules and listing limits
type JournalConfig struct {
	TitleMaxLength      int `json:"titleMaxLength" yaml:"titleMaxLength"`
	SearchFallbackLimit int `json:"searchFallbackLimit" yaml:"searchFallbackLimit"`
	DefaultPageSize     int `json:"defaultPageSize" yaml:"defaultPageSize"`
}

type PreferencesConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// ExportConfig defines the export destination
type ExportConfig struct {
	// A gocloud.dev/blob URL such as file:///var/journal/exports or mem://, or a plain directory
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
}

// ErrConfigNotFound is returned when no search path holds the config file.
var ErrConfigNotFound = errors.New("config file not found")

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if dir := strings.TrimSpace(os.Getenv(ConfigDirEnv)); dir != "" {
		searchPaths = []string{dir, defaultPath}
	}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Wrapf(ErrConfigNotFound, "%s.yaml in %s", currEnv, strings.Join(searchPaths, ", "))
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: DATABASE_BUSYTIMEOUT -> database.busyTimeout (not database.busytimeout)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	return cfg, nil
}

// NewOrDefault behaves like New but falls back to the built-in defaults when
// no config file exists, so the CLI works from any directory.
func NewOrDefault() (*Config, error) {
	cfg, err := New()
	if errors.Is(err, ErrConfigNotFound) {
		cfg = &Config{}
		ApplyDefaults(cfg)

		return cfg, nil
	}

	return cfg, err
}

// ApplyDefaults fills every missing section and zero-valued limit.
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Env.Log.Level) == "" {
		cfg.Env.Log.Level = "info"
	}

	if cfg.Database == nil {
		cfg.Database = &DatabaseConfig{}
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		cfg.Database.Path = defaultDatabasePath
	}
	if cfg.Database.BusyTimeout <= 0 {
		cfg.Database.BusyTimeout = defaultBusyTimeout
	}
	if cfg.Database.SlowThreshold <= 0 {
		cfg.Database.SlowThreshold = 200 * time.Millisecond
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.PasswordMinLength <= 0 {
		cfg.Auth.PasswordMinLength = defaultPasswordMinLength
	}

	if cfg.Journal == nil {
		cfg.Journal = &JournalConfig{}
	}
	if cfg.Journal.TitleMaxLength <= 0 {
		cfg.Journal.TitleMaxLength = defaultTitleMaxLength
	}
	if cfg.Journal.SearchFallbackLimit <= 0 {
		cfg.Journal.SearchFallbackLimit = defaultSearchFallbackLimit
	}
	if cfg.Journal.DefaultPageSize <= 0 {
		cfg.Journal.DefaultPageSize = defaultPageSize
	}

	if cfg.Preferences == nil {
		cfg.Preferences = &PreferencesConfig{}
	}
	if strings.TrimSpace(cfg.Preferences.Dir) == "" {
		cfg.Preferences.Dir = defaultPreferencesDir
	}

	if cfg.Export == nil {
		cfg.Export = &ExportConfig{}
	}
	if strings.TrimSpace(cfg.Export.BucketURL) == "" {
		cfg.Export.BucketURL = defaultExportBucketURL
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
