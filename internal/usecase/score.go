package usecase

import (
	"sort"
	"strings"

	"github.com/naka-gawa/gitgrade/internal/config"
	"github.com/naka-gawa/gitgrade/internal/domain"
)

// Roadmap suggestions, one per failed rubric check.
const (
	AdviceDescription   = "Add a concise description to your repository."
	AdviceReadme        = "Create a README.md file. It is the first thing visitors see."
	AdviceExpandReadme  = "Expand your README.md with installation and usage details."
	AdviceLicense       = "Add a LICENSE file to define usage rights."
	AdviceGitignore     = "Add a .gitignore file to keep build output and local files out of the repository."
	AdviceCommitCadence = "Commit more frequently. Consistency is key."
	AdviceTests         = "Add a test suite (e.g., JUnit, Jest, go test) to verify your code."
	AdviceCI            = "Set up GitHub Actions to build and test every change."
)

const noDescription = "No description provided."

var tierSummaries = map[domain.Tier]string{
	domain.TierExcellent:  "World-class repository! Excellent structure, documentation, and practices.",
	domain.TierGreat:      "Great repository with solid foundations. Minor polish needed.",
	domain.TierGood:       "Good start, but lacks critical elements like testing or CI/CD.",
	domain.TierEarlyStage: "Early stage project. Needs significant structure and documentation improvements.",
}

// scorecard accumulates category points, roadmap items and details while the
// rubric is evaluated. Roadmap order is evaluation order.
type scorecard struct {
	scores  map[domain.Category]int
	roadmap []string
	details map[string]any
}

func (c *scorecard) advise(advice string) {
	c.roadmap = append(c.roadmap, advice)
}

// Score grades the facts against the rubric. It performs no I/O.
func Score(facts *domain.RepositoryFacts, rubric config.Rubric) *domain.AnalysisResult {
	card := &scorecard{
		scores:  make(map[domain.Category]int, len(domain.Categories)),
		roadmap: []string{},
		details: make(map[string]any),
	}

	card.scores[domain.CategoryDocumentation] = scoreDocumentation(facts, rubric.Documentation, card)
	card.scores[domain.CategoryCodeQuality] = scoreCodeQuality(facts, rubric.CodeQuality, card)
	card.scores[domain.CategoryHealth] = scoreHealth(facts, rubric.Health, card)
	card.scores[domain.CategoryTesting] = scoreTesting(facts, rubric.Testing, card)
	card.scores[domain.CategoryCICD] = scoreCICD(facts, rubric.CICD, card)

	maxima := rubric.Maxima()
	total := 0
	breakdown := make([]domain.CategoryScore, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		total += card.scores[category]
		breakdown = append(breakdown, domain.CategoryScore{
			Category: category,
			Points:   card.scores[category],
			Max:      maxima[category],
		})
	}
	total = clamp(total, 0, rubric.MaxTotal)

	if median, ok := commitIntervalMedianHours(facts.Commits); ok {
		card.details["commitIntervalMedianHours"] = median
	}

	description := strings.TrimSpace(facts.Metadata.Description)
	if description == "" {
		description = noDescription
	}

	tier := TierFor(total, rubric.Tiers)
	return &domain.AnalysisResult{
		RepoName:       facts.Identifier.String(),
		Description:    description,
		Score:          total,
		Tier:           tier,
		Summary:        tierSummaries[tier],
		Roadmap:        card.roadmap,
		TechStack:      techStack(facts.Languages),
		Details:        card.details,
		CategoryScores: card.scores,
		Breakdown:      breakdown,
	}
}

func scoreDocumentation(facts *domain.RepositoryFacts, r config.DocumentationRubric, card *scorecard) int {
	points := 0
	if strings.TrimSpace(facts.Metadata.Description) != "" {
		points += r.DescriptionPoints
	} else {
		card.advise(AdviceDescription)
	}

	if facts.Readme != nil {
		points += r.ReadmePoints
		if facts.Readme.Size > r.DetailedReadmeMinSize {
			points += r.DetailedReadmePoints
		} else {
			card.advise(AdviceExpandReadme)
		}
	} else {
		card.advise(AdviceReadme)
	}
	card.details["hasReadme"] = facts.Readme != nil

	return clamp(points, 0, r.Max)
}

func scoreCodeQuality(facts *domain.RepositoryFacts, r config.CodeQualityRubric, card *scorecard) int {
	points := 0
	if facts.Metadata.HasLicense {
		points += r.LicensePoints
	} else {
		card.advise(AdviceLicense)
	}
	card.details["hasLicense"] = facts.Metadata.HasLicense

	if facts.HasGitignore {
		points += r.GitignorePoints
	} else {
		card.advise(AdviceGitignore)
	}

	// A missing tooling file costs points but has no roadmap item.
	if facts.ToolingFile != "" {
		points += r.ToolingPoints
		card.details["toolingFile"] = facts.ToolingFile
	}

	return clamp(points, 0, r.Max)
}

func scoreHealth(facts *domain.RepositoryFacts, r config.HealthRubric, card *scorecard) int {
	card.details["stars"] = facts.Metadata.Stars
	card.details["forks"] = facts.Metadata.Forks
	card.details["open_issues"] = facts.Metadata.OpenIssues

	points := 0
	if facts.CommitsAvailable() && len(facts.Commits) > r.MinRecentCommits {
		points += r.ActivityPoints
		card.details["recentCommits"] = len(facts.Commits)
	} else {
		card.advise(AdviceCommitCadence)
		card.details["recentCommits"] = 0
	}

	if facts.PullsAvailable() {
		points += r.PullRequestPoints
		card.details["prs"] = len(facts.PullRequests)
	}

	return clamp(points, 0, r.Max)
}

func scoreTesting(facts *domain.RepositoryFacts, r config.TestingRubric, card *scorecard) int {
	points := 0
	if facts.HasTests {
		points += r.Points
	} else {
		card.advise(AdviceTests)
	}
	card.details["hasTests"] = facts.HasTests
	return clamp(points, 0, r.Max)
}

func scoreCICD(facts *domain.RepositoryFacts, r config.CICDRubric, card *scorecard) int {
	points := 0
	if facts.HasWorkflows {
		points += r.Points
	} else {
		card.advise(AdviceCI)
	}
	card.details["hasWorkflows"] = facts.HasWorkflows
	return clamp(points, 0, r.Max)
}

// TierFor classifies a total score.
func TierFor(total int, t config.TierThresholds) domain.Tier {
	switch {
	case total >= t.Excellent:
		return domain.TierExcellent
	case total >= t.Great:
		return domain.TierGreat
	case total >= t.Good:
		return domain.TierGood
	default:
		return domain.TierEarlyStage
	}
}

// techStack lists languages by byte count, largest first.
func techStack(languages map[string]int) []string {
	stack := make([]string, 0, len(languages))
	for language := range languages {
		stack = append(stack, language)
	}
	sort.Slice(stack, func(i, j int) bool {
		if languages[stack[i]] != languages[stack[j]] {
			return languages[stack[i]] > languages[stack[j]]
		}
		return stack[i] < stack[j]
	})
	return stack
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
