// Package config provides configuration loading and defaults for gitgrade.
package config

import "time"

// DefaultConfigDir is the default location for gitgrade configuration.
const DefaultConfigDir = "~/.config/gitgrade"

// EnvPrefix is the prefix for environment variable overrides (GITGRADE_SERVER_ADDR, ...).
const EnvPrefix = "GITGRADE"

// DefaultServer holds the default HTTP server settings.
var DefaultServer = Server{
	Addr:            ":8080",
	RequestTimeout:  30 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}

// DefaultGitHub holds the default GitHub client settings.
var DefaultGitHub = GitHub{
	Timeout:          15 * time.Second,
	MaxRateLimitWait: 0,
}

// DefaultRubric is the scoring rubric. Category maxima sum to 100.
var DefaultRubric = Rubric{
	MaxTotal: 100,
	Documentation: DocumentationRubric{
		Max:                   20,
		DescriptionPoints:     5,
		ReadmePoints:          10,
		DetailedReadmePoints:  5,
		DetailedReadmeMinSize: 500,
		ReadmePaths:           []string{"README.md", "readme.md", "Readme.md"},
	},
	CodeQuality: CodeQualityRubric{
		Max:             25,
		LicensePoints:   5,
		GitignorePoints: 5,
		GitignorePath:   ".gitignore",
		ToolingPoints:   15,
		ToolingFiles:    []string{".eslintrc", ".prettierrc", "checkstyle.xml", "pom.xml", "package.json", "go.mod"},
	},
	Health: HealthRubric{
		Max:               25,
		ActivityPoints:    15,
		MinRecentCommits:  5,
		CommitSampleSize:  30,
		PullRequestPoints: 10,
		PullSampleSize:    10,
		PullState:         "all",
	},
	Testing: TestingRubric{
		Max:       15,
		Points:    15,
		TestPaths: []string{"test", "tests", "src/test"},
	},
	CICD: CICDRubric{
		Max:          15,
		Points:       15,
		WorkflowPath: ".github/workflows",
	},
	Tiers: TierThresholds{
		Excellent: 90,
		Great:     75,
		Good:      50,
	},
}
