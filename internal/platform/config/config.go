package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	apperrors "lifebalance/internal/platform/errors"
)

const (
	// StateDir holds everything the tool writes besides vault notes.
	StateDir = ".lifebalance"

	DefaultRiskFreeRate = 5.0
	DefaultVault        = "."
)

type Config struct {
	VaultPath    string
	DBPath       string
	LogPath      string
	RiskFreeRate float64
}

// fileConfig models <vault>/.lifebalance/config.yaml.
type fileConfig struct {
	RiskFreeRate *float64 `yaml:"risk_free_rate"`
	DBPath       string   `yaml:"db_path"`
}

type envConfig struct {
	VaultPath    string `env:"LIFEBALANCE_VAULT"`
	DBPath       string `env:"LIFEBALANCE_DB_PATH"`
	RiskFreeRate string `env:"LIFEBALANCE_RISK_FREE_RATE"`
}

func New(vaultPath string) (Config, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return Config{}, fmt.Errorf("%w: vault path is required", apperrors.ErrInvalidInput)
	}
	return Config{
		VaultPath:    vaultPath,
		DBPath:       filepath.Join(vaultPath, StateDir, "lifebalance.db"),
		LogPath:      filepath.Join(vaultPath, StateDir, "logs", "lifebalance.log"),
		RiskFreeRate: DefaultRiskFreeRate,
	}, nil
}

// Load resolves the configuration for vaultPath. Precedence, lowest first:
// defaults, config.yaml inside the vault, LIFEBALANCE_* environment variables.
// LIFEBALANCE_VAULT replaces vaultPath only when vaultPath is empty; with
// neither set the current directory is the vault.
func Load(vaultPath string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(vaultPath) == "" {
		vaultPath = envCfg.VaultPath
	}
	if strings.TrimSpace(vaultPath) == "" {
		vaultPath = DefaultVault
	}
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}

	fileCfg, err := readFile(filepath.Join(vaultPath, StateDir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}
	if fileCfg.RiskFreeRate != nil {
		cfg.RiskFreeRate = *fileCfg.RiskFreeRate
	}
	if fileCfg.DBPath != "" {
		cfg.DBPath = resolve(vaultPath, fileCfg.DBPath)
	}

	if envCfg.RiskFreeRate != "" {
		rate, err := strconv.ParseFloat(strings.TrimSpace(envCfg.RiskFreeRate), 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse env: LIFEBALANCE_RISK_FREE_RATE: %w", err)
		}
		cfg.RiskFreeRate = rate
	}
	if envCfg.DBPath != "" {
		cfg.DBPath = resolve(vaultPath, envCfg.DBPath)
	}

	if math.IsNaN(cfg.RiskFreeRate) || math.IsInf(cfg.RiskFreeRate, 0) {
		return Config{}, fmt.Errorf("%w: risk free rate must be finite", apperrors.ErrInvalidInput)
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	return cfg, nil
}

func resolve(vaultPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(vaultPath, p)
}
