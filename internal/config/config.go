package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level gitgrade configuration.
type Config struct {
	Server Server `mapstructure:"server"`
	GitHub GitHub `mapstructure:"github"`
	Rubric Rubric `mapstructure:"rubric"`
}

// Server configures the HTTP endpoint.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GitHub configures the GitHub API client.
type GitHub struct {
	Token string `mapstructure:"token"`

	// BaseURL and GraphQLURL point at a GitHub Enterprise instance when set.
	BaseURL          string        `mapstructure:"base_url"`
	GraphQLURL       string        `mapstructure:"graphql_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRateLimitWait time.Duration `mapstructure:"max_rate_limit_wait"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location),
// applies .env and environment overrides, and validates the rubric.
func Load(cfgFile string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github token env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		// Only the default location may be absent; a named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Rubric.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultServer.Addr)
	v.SetDefault("server.request_timeout", DefaultServer.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServer.ShutdownTimeout)

	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.graphql_url", "")
	v.SetDefault("github.timeout", DefaultGitHub.Timeout)
	v.SetDefault("github.max_rate_limit_wait", DefaultGitHub.MaxRateLimitWait)

	r := DefaultRubric
	v.SetDefault("rubric.max_total", r.MaxTotal)

	v.SetDefault("rubric.documentation.max", r.Documentation.Max)
	v.SetDefault("rubric.documentation.description_points", r.Documentation.DescriptionPoints)
	v.SetDefault("rubric.documentation.readme_points", r.Documentation.ReadmePoints)
	v.SetDefault("rubric.documentation.detailed_readme_points", r.Documentation.DetailedReadmePoints)
	v.SetDefault("rubric.documentation.detailed_readme_min_size", r.Documentation.DetailedReadmeMinSize)
	v.SetDefault("rubric.documentation.readme_paths", r.Documentation.ReadmePaths)

	v.SetDefault("rubric.code_quality.max", r.CodeQuality.Max)
	v.SetDefault("rubric.code_quality.license_points", r.CodeQuality.LicensePoints)
	v.SetDefault("rubric.code_quality.gitignore_points", r.CodeQuality.GitignorePoints)
	v.SetDefault("rubric.code_quality.gitignore_path", r.CodeQuality.GitignorePath)
	v.SetDefault("rubric.code_quality.tooling_points", r.CodeQuality.ToolingPoints)
	v.SetDefault("rubric.code_quality.tooling_files", r.CodeQuality.ToolingFiles)

	v.SetDefault("rubric.health.max", r.Health.Max)
	v.SetDefault("rubric.health.activity_points", r.Health.ActivityPoints)
	v.SetDefault("rubric.health.min_recent_commits", r.Health.MinRecentCommits)
	v.SetDefault("rubric.health.commit_sample_size", r.Health.CommitSampleSize)
	v.SetDefault("rubric.health.pull_request_points", r.Health.PullRequestPoints)
	v.SetDefault("rubric.health.pull_sample_size", r.Health.PullSampleSize)
	v.SetDefault("rubric.health.pull_state", r.Health.PullState)

	v.SetDefault("rubric.testing.max", r.Testing.Max)
	v.SetDefault("rubric.testing.points", r.Testing.Points)
	v.SetDefault("rubric.testing.test_paths", r.Testing.TestPaths)

	v.SetDefault("rubric.cicd.max", r.CICD.Max)
	v.SetDefault("rubric.cicd.points", r.CICD.Points)
	v.SetDefault("rubric.cicd.workflow_path", r.CICD.WorkflowPath)

	v.SetDefault("rubric.tiers.excellent", r.Tiers.Excellent)
	v.SetDefault("rubric.tiers.great", r.Tiers.Great)
	v.SetDefault("rubric.tiers.good", r.Tiers.Good)
}
