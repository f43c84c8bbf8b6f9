package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DirName is the per-user data directory under $HOME.
	DirName = ".leavedesk"
	// FileName is the config file inside the data directory.
	FileName = "config.yaml"
)

// Environment overrides, applied after every file.
const (
	EnvAPIURL   = "LEAVEDESK_API_URL"
	EnvLogLevel = "LEAVEDESK_LOG_LEVEL"
	EnvDataDir  = "LEAVEDESK_DATA_DIR"
)

// Loader builds a Config with layered precedence.
type Loader struct {
	logger *zap.Logger
	getenv func(string) string
	home   func() (string, error)
}

// NewLoader returns a Loader. A nil logger discards output.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger, getenv: os.Getenv, home: os.UserHomeDir}
}

// Load resolves configuration in order:
//  1. defaults
//  2. <data dir>/config.yaml
//  3. explicit path (if non-empty; it must exist)
//  4. .env in the working directory, then LEAVEDESK_* variables
func (l *Loader) Load(explicit string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("failed to load .env", zap.Error(err))
	}

	dataDir := l.DataDir()
	cfg := DefaultConfig(dataDir)

	userPath := filepath.Join(dataDir, FileName)
	if userCfg, err := LoadFromFile(userPath); err == nil {
		l.logger.Debug("loaded user config", zap.String("path", userPath))
		cfg.Merge(userCfg)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("failed to load user config", zap.String("path", userPath), zap.Error(err))
	}

	if explicit != "" {
		fileCfg, err := LoadFromFile(explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", zap.String("path", explicit))
		cfg.Merge(fileCfg)
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataDir returns LEAVEDESK_DATA_DIR or ~/.leavedesk.
func (l *Loader) DataDir() string {
	if dir := l.getenv(EnvDataDir); dir != "" {
		return dir
	}
	home, err := l.home()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

func (l *Loader) applyEnv(cfg *Config) {
	if v := strings.TrimSpace(l.getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(l.getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}
