package domain

// Category is a scoring rubric dimension. Its value is the display name used in JSON.
type Category string

const (
	CategoryDocumentation Category = "Documentation"
	CategoryCodeQuality   Category = "Code Quality"
	CategoryHealth        Category = "Health"
	CategoryTesting       Category = "Testing"
	CategoryCICD          Category = "CI/CD"
)

// Categories lists every category in evaluation order.
var Categories = []Category{
	CategoryDocumentation,
	CategoryCodeQuality,
	CategoryHealth,
	CategoryTesting,
	CategoryCICD,
}

// CategoryScore is the points earned in one category out of its maximum.
type CategoryScore struct {
	Category Category `json:"category"`
	Points   int      `json:"points"`
	Max      int      `json:"max"`
}

// Tier is the summary classification of a total score.
type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGreat      Tier = "great"
	TierGood       Tier = "good"
	TierEarlyStage Tier = "early_stage"
)

// AnalysisResult is the report returned for one analyzed repository.
// It is built fresh per request and owned by the caller.
type AnalysisResult struct {
	RepoName       string           `json:"repoName"`
	Description    string           `json:"description"`
	Score          int              `json:"score"`
	Tier           Tier             `json:"tier"`
	Summary        string           `json:"summary"`
	Roadmap        []string         `json:"roadmap"`
	TechStack      []string         `json:"techStack"`
	Details        map[string]any   `json:"details"`
	CategoryScores map[Category]int `json:"categoryScores"`

	// Breakdown lists category scores with their maxima in evaluation order.
	// It is empty for the fallback report.
	Breakdown []CategoryScore `json:"breakdown,omitempty"`
	Degraded  bool            `json:"degraded"`
}
