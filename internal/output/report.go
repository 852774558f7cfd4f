package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// scoreBar renders points out of limit as a fixed-width bar, e.g. "████░░░░ 10/20".
func scoreBar(points, limit, width int) string {
	filled := 0
	ratio := 0.0
	if limit > 0 {
		filled = points * width / limit
		ratio = float64(points) / float64(limit)
	}
	filled = min(max(filled, 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := styleError
	switch {
	case ratio >= 0.7:
		style = styleSuccess
	case ratio >= 0.4:
		style = styleWarning
	}
	return fmt.Sprintf("%s %d/%d", style.Render(bar), points, limit)
}

// WriteReport writes a human-readable report. categoryMax gives the maximum per category.
func WriteReport(w io.Writer, result *domain.AnalysisResult, categoryMax map[domain.Category]int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", styleHeader.Render(result.RepoName))
	fmt.Fprintf(&b, "%s\n\n", styleMuted.Render(result.Description))
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("Score"), scoreBar(result.Score, 100, 20))
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("Summary"), result.Summary)
	if len(result.TechStack) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("Tech stack"), strings.Join(result.TechStack, ", "))
	}

	fmt.Fprintf(&b, "\n%s\n", styleHeader.Render("Categories"))
	for _, category := range domain.Categories {
		points, ok := result.CategoryScores[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render(string(category)), scoreBar(points, categoryMax[category], 10))
	}

	if len(result.Details) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styleHeader.Render("Details"))
		keys := make([]string, 0, len(result.Details))
		for k := range result.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s %v\n", styleLabel.Render(k), result.Details[k])
		}
	}

	if len(result.Roadmap) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styleHeader.Render("Roadmap"))
		for i, item := range result.Roadmap {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, item)
		}
	}

	if result.Degraded {
		fmt.Fprintf(&b, "\n%s\n", styleWarning.Render("Upstream data was unavailable; figures above are demonstration values."))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
