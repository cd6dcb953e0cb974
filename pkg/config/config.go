package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Audit    AuditConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	Mode            string
	ReadTimeout     int
	WriteTimeout    int
	APIToken        string
	CORSOrigins     []string
	AuditsPerMinute int
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Token string
}

type AuditConfig struct {
	Workers         int
	PollInterval    int
	CloneDir        string
	ScoringFile     string
	FixedThresholds bool
}

type LogConfig struct {
	Level  string
	Format string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	_ = godotenv.Load()

	AppConfig = &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Mode:            getEnv("GIN_MODE", "release"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			APIToken:        getEnv("GITAUDIT_API_TOKEN", ""),
			CORSOrigins:     getEnvAsList("GITAUDIT_CORS_ORIGINS"),
			AuditsPerMinute: getEnvAsInt("GITAUDIT_AUDITS_PER_MINUTE", 30),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", ""),
		},
		GitHub: GitHubConfig{
			Token: getEnv("GITAUDIT_GITHUB_TOKEN", getEnv("GITHUB_TOKEN", "")),
		},
		Audit: AuditConfig{
			Workers:         getEnvAsInt("AUDIT_WORKERS", 2),
			PollInterval:    getEnvAsInt("AUDIT_POLL_INTERVAL", 2),
			CloneDir:        getEnv("GITAUDIT_CLONE_DIR", ""),
			ScoringFile:     getEnv("GITAUDIT_SCORING_FILE", ""),
			FixedThresholds: getEnvAsBool("GITAUDIT_FIXED_THRESHOLDS", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return nil
}

// ScoringFile is the YAML document that overrides scoring defaults and
// carries identity aliases and path exclusions.
type ScoringFile struct {
	Settings           *models.ScoreSettings `yaml:"scoring"`
	Aliases            []*models.EmailMerge  `yaml:"aliases"`
	ExcludedFolders    []string              `yaml:"excluded_folders"`
	ExcludedExtensions []string              `yaml:"excluded_extensions"`
}

// LoadScoringFile reads path over the default settings. Keys absent from
// the file keep their defaults. An empty path returns the defaults.
func LoadScoringFile(path string) (*ScoringFile, error) {
	file := &ScoringFile{Settings: models.NewScoreSettings()}
	if path == "" {
		return file, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring file: %w", err)
	}
	if err := yaml.Unmarshal(content, file); err != nil {
		return nil, fmt.Errorf("failed to parse scoring file %s: %w", path, err)
	}
	if file.Settings == nil {
		file.Settings = models.NewScoreSettings()
	}

	if err := file.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring file %s: %w", path, err)
	}
	for i, alias := range file.Aliases {
		normalized := models.NewEmailMerge(alias.SourceEmail, alias.TargetEmail)
		if err := normalized.Validate(); err != nil {
			return nil, fmt.Errorf("invalid alias #%d in %s: %w", i+1, path, err)
		}
		file.Aliases[i] = normalized
	}

	return file, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
