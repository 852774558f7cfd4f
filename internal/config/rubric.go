package config

import (
	"errors"
	"fmt"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// Rubric holds every point value, threshold and path list used to score a repository.
type Rubric struct {
	MaxTotal      int                 `mapstructure:"max_total"`
	Documentation DocumentationRubric `mapstructure:"documentation"`
	CodeQuality   CodeQualityRubric   `mapstructure:"code_quality"`
	Health        HealthRubric        `mapstructure:"health"`
	Testing       TestingRubric       `mapstructure:"testing"`
	CICD          CICDRubric          `mapstructure:"cicd"`
	Tiers         TierThresholds      `mapstructure:"tiers"`
}

// DocumentationRubric scores the description and README.
type DocumentationRubric struct {
	Max                  int `mapstructure:"max"`
	DescriptionPoints    int `mapstructure:"description_points"`
	ReadmePoints         int `mapstructure:"readme_points"`
	DetailedReadmePoints int `mapstructure:"detailed_readme_points"`

	// DetailedReadmeMinSize is exclusive: the README must be strictly larger.
	DetailedReadmeMinSize int `mapstructure:"detailed_readme_min_size"`

	// ReadmePaths are preferred README names, matched against the root
	// listing ignoring case and looked up verbatim when the listing fails.
	ReadmePaths []string `mapstructure:"readme_paths"`
}

// CodeQualityRubric scores the license, .gitignore and tooling configuration.
type CodeQualityRubric struct {
	Max             int      `mapstructure:"max"`
	LicensePoints   int      `mapstructure:"license_points"`
	GitignorePoints int      `mapstructure:"gitignore_points"`
	GitignorePath   string   `mapstructure:"gitignore_path"`
	ToolingPoints   int      `mapstructure:"tooling_points"`
	ToolingFiles    []string `mapstructure:"tooling_files"`
}

// HealthRubric scores recent commit and pull request activity.
type HealthRubric struct {
	Max            int `mapstructure:"max"`
	ActivityPoints int `mapstructure:"activity_points"`

	// MinRecentCommits is exclusive: more than this many commits earns ActivityPoints.
	MinRecentCommits  int    `mapstructure:"min_recent_commits"`
	CommitSampleSize  int    `mapstructure:"commit_sample_size"`
	PullRequestPoints int    `mapstructure:"pull_request_points"`
	PullSampleSize    int    `mapstructure:"pull_sample_size"`
	PullState         string `mapstructure:"pull_state"`
}

// TestingRubric scores the presence of a test directory.
type TestingRubric struct {
	Max       int      `mapstructure:"max"`
	Points    int      `mapstructure:"points"`
	TestPaths []string `mapstructure:"test_paths"`
}

// CICDRubric scores the presence of CI workflows.
type CICDRubric struct {
	Max          int    `mapstructure:"max"`
	Points       int    `mapstructure:"points"`
	WorkflowPath string `mapstructure:"workflow_path"`
}

// TierThresholds are the inclusive lower bounds of each summary tier.
type TierThresholds struct {
	Excellent int `mapstructure:"excellent"`
	Great     int `mapstructure:"great"`
	Good      int `mapstructure:"good"`
}

// Validate reports rubric settings that would let a category exceed its maximum.
func (r Rubric) Validate() error {
	var errs []error
	check := func(name string, limit int, points ...int) {
		sum := 0
		for _, p := range points {
			if p < 0 {
				errs = append(errs, fmt.Errorf("%s: negative points %d", name, p))
			}
			sum += p
		}
		if sum > limit {
			errs = append(errs, fmt.Errorf("%s: points add up to %d, above max %d", name, sum, limit))
		}
	}
	check("documentation", r.Documentation.Max, r.Documentation.DescriptionPoints, r.Documentation.ReadmePoints, r.Documentation.DetailedReadmePoints)
	check("code_quality", r.CodeQuality.Max, r.CodeQuality.LicensePoints, r.CodeQuality.GitignorePoints, r.CodeQuality.ToolingPoints)
	check("health", r.Health.Max, r.Health.ActivityPoints, r.Health.PullRequestPoints)
	check("testing", r.Testing.Max, r.Testing.Points)
	check("cicd", r.CICD.Max, r.CICD.Points)

	if r.MaxTotal <= 0 {
		errs = append(errs, fmt.Errorf("max_total must be positive, got %d", r.MaxTotal))
	}
	if len(r.Documentation.ReadmePaths) == 0 {
		errs = append(errs, errors.New("documentation: readme_paths is empty"))
	}
	if r.Health.CommitSampleSize <= 0 || r.Health.PullSampleSize <= 0 {
		errs = append(errs, errors.New("health: sample sizes must be positive"))
	}
	if !(r.Tiers.Excellent >= r.Tiers.Great && r.Tiers.Great >= r.Tiers.Good) {
		errs = append(errs, fmt.Errorf("tiers must be descending, got %d/%d/%d", r.Tiers.Excellent, r.Tiers.Great, r.Tiers.Good))
	}
	return errors.Join(errs...)
}

// Maxima returns the maximum points of each category.
func (r Rubric) Maxima() map[domain.Category]int {
	return map[domain.Category]int{
		domain.CategoryDocumentation: r.Documentation.Max,
		domain.CategoryCodeQuality:   r.CodeQuality.Max,
		domain.CategoryHealth:        r.Health.Max,
		domain.CategoryTesting:       r.Testing.Max,
		domain.CategoryCICD:          r.CICD.Max,
	}
}
