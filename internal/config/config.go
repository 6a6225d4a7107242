// Package config loads runtime configuration from, in increasing precedence:
// the optional TOML config file, environment variables, and CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/moodio/moodio-agent/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Flags    map[string]string
	Args     []string
	FilePath string // config file actually consulted, if any
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigFile   = "MOODIO_AGENT_CONFIG"
	envBackendURL   = "MOODIO_AGENT_BACKEND_URL"
	envAPIKey       = "MOODIO_AGENT_API_KEY"
	envWidth        = "MOODIO_AGENT_WIDTH"
	envHeight       = "MOODIO_AGENT_HEIGHT"
	envShowFooter   = "MOODIO_AGENT_FOOTER"
	envVerbose      = "MOODIO_AGENT_VERBOSE"
	envTrace        = "MOODIO_AGENT_TRACE"
	envLogFile      = "MOODIO_AGENT_LOG_FILE"
	envDraftDir     = "MOODIO_AGENT_DRAFT_DIR"
	envMenuConfig   = "MOODIO_AGENT_MENU_CONFIG"
	envPollInterval = "MOODIO_AGENT_POLL_INTERVAL"
)

// fileConfig is the TOML schema of the optional config file.
type fileConfig struct {
	Backend struct {
		URL    string `toml:"url"`
		APIKey string `toml:"api_key"`
	} `toml:"backend"`
	UI struct {
		Width  int  `toml:"width"`
		Height int  `toml:"height"`
		Footer bool `toml:"footer"`
	} `toml:"ui"`
	Logging struct {
		File  string `toml:"file"`
		Trace bool   `toml:"trace"`
	} `toml:"logging"`
	DraftDir     string `toml:"draft_dir"`
	MenuConfig   string `toml:"menu_config"`
	PollInterval string `toml:"poll_interval"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	filePath, fileCfg, err := loadFile(env)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("moodio-agent", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	backendURL := fs.String("backend-url", envOrDefault(env, envBackendURL, fileCfg.Backend.URL), "base URL of the Moodio backend")
	apiKey := fs.String("api-key", envOrDefault(env, envAPIKey, fileCfg.Backend.APIKey), "backend API key")
	width := fs.Int("width", envOrInt(env, envWidth, fileCfg.UI.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fileCfg.UI.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fileCfg.UI.Footer), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fileCfg.Logging.Trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fileCfg.Logging.File), "path to the log file")
	draftDir := fs.String("draft-dir", envOrDefault(env, envDraftDir, fileCfg.DraftDir), "directory for composer drafts")
	menuConfig := fs.String("menu-config", envOrDefault(env, envMenuConfig, fileCfg.MenuConfig), "path to a TOML mode-table overlay")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, fileDuration(fileCfg.PollInterval, 5*time.Second)), "backend polling interval")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pollInterval <= 0 {
		return Config{}, fmt.Errorf("poll-interval must be positive (got %s)", *pollInterval)
	}

	cfg := Config{
		App: app.Config{
			BackendURL:   *backendURL,
			APIKey:       *apiKey,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			DraftDir:     *draftDir,
			MenuConfig:   *menuConfig,
			PollInterval: *pollInterval,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"backendURL":   *backendURL,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"draftDir":     *draftDir,
			"menuConfig":   *menuConfig,
			"pollInterval": pollInterval.String(),
		},
		Args:     append([]string(nil), args...),
		FilePath: filePath,
	}

	return cfg, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.BackendURL) == "" {
		return fmt.Errorf("backend URL is required (flag -backend-url, env %s, or the config file)", envBackendURL)
	}
	return nil
}

// loadFile reads the TOML config file named by the environment, or the
// default location when present. A missing default file is not an error.
func loadFile(env map[string]string) (string, fileConfig, error) {
	var cfg fileConfig
	path := strings.TrimSpace(env[envConfigFile])
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", cfg, nil
		}
		path = filepath.Join(home, ".moodio-agent", "config.toml")
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return "", cfg, fmt.Errorf("config file %s: %w", path, err)
		}
		return "", cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return "", cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return path, cfg, nil
}

func fileDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
