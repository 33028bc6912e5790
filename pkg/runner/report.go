package runner

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/unify/pkg/domain"
)

// CheckResult is the outcome of one problem in a Check run.
type CheckResult struct {
	ProblemID   string             `json:"problem_id"`
	Description string             `json:"description,omitempty"`
	Left        string             `json:"left"`
	Right       string             `json:"right"`
	Expect      domain.Expectation `json:"expect,omitempty"`
	Passed      bool               `json:"passed"`
	// Solution is nil when the problem could not be solved.
	Solution  *domain.Solution `json:"solution,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorKind string           `json:"error_kind,omitempty"`
}

// Outcome is "unified", "failed" or "error".
func (c CheckResult) Outcome() string {
	switch {
	case c.Solution == nil:
		return "error"
	case c.Solution.Unified:
		return string(domain.OutcomeUnified)
	default:
		return string(domain.OutcomeFailed)
	}
}

// Report is the outcome of a Check run, in problem ID order.
type Report struct {
	Results  []CheckResult `json:"results"`
	Duration time.Duration `json:"duration"`
}

// Failed returns the results that did not meet their expectation.
func (r *Report) Failed() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Summary returns a one-line count of passed and failed results.
func (r *Report) Summary() string {
	failed := len(r.Failed())
	return fmt.Sprintf("%d problems, %d passed, %d failed", len(r.Results), len(r.Results)-failed, failed)
}

// RenderText renders r as plain text, one line per problem.
func RenderText(r *Report) string {
	var sb strings.Builder
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%s %s: %s = %s -> %s", status, res.ProblemID, res.Left, res.Right, res.Outcome())
		if res.Expect != domain.ExpectNone {
			fmt.Fprintf(&sb, " (expected %s)", res.Expect)
		}
		sb.WriteByte('\n')
		switch {
		case res.Error != "":
			fmt.Fprintf(&sb, "    error: %s\n", res.Error)
		case res.Solution != nil && res.Solution.Unified:
			fmt.Fprintf(&sb, "    unifier: %s\n", res.Solution.Unifier)
		case res.Solution != nil:
			fmt.Fprintf(&sb, "    reason: %s\n", res.Solution.Error)
		}
	}
	sb.WriteString(r.Summary())
	sb.WriteByte('\n')
	return sb.String()
}

// RenderMarkdown renders r as a markdown table.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder
	sb.WriteString("# Unification report\n\n")
	sb.WriteString("| Problem | Left | Right | Expect | Outcome | Result |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, res := range r.Results {
		status := "✅"
		if !res.Passed {
			status = "❌"
		}
		expect := string(res.Expect)
		if expect == "" {
			expect = "-"
		}
		fmt.Fprintf(&sb, "| %s | `%s` | `%s` | %s | %s | %s |\n",
			res.ProblemID, res.Left, res.Right, expect, res.Outcome(), status)
	}
	fmt.Fprintf(&sb, "\n**%s**\n", r.Summary())

	if failed := r.Failed(); len(failed) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, res := range failed {
			reason := res.Error
			if reason == "" && res.Solution != nil {
				reason = res.Solution.Error
			}
			if reason == "" {
				reason = "unexpectedly unified to `" + res.Solution.Unifier + "`"
			}
			fmt.Fprintf(&sb, "- **%s**: %s\n", res.ProblemID, reason)
		}
	}
	return sb.String()
}

// RenderJSON renders r as indented JSON.
func RenderJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SolutionText renders a single solution the way the CLI prints it.
func SolutionText(s *domain.Solution) string {
	var sb strings.Builder
	if !s.Unified {
		fmt.Fprintf(&sb, "no unifier: %s\n", s.Error)
		return sb.String()
	}
	fmt.Fprintf(&sb, "unifier: %s\n", s.Unifier)
	for _, name := range sortedNames(s.Bindings) {
		fmt.Fprintf(&sb, "  %s = %s\n", name, s.Bindings[name])
	}
	return sb.String()
}

// SolutionMarkdown renders a single solution as markdown.
func SolutionMarkdown(s *domain.Solution) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## `%s` = `%s`\n\n", s.Left, s.Right)
	if !s.Unified {
		fmt.Fprintf(&sb, "No unifier (%s): %s\n", s.ErrorKind, s.Error)
		return sb.String()
	}
	fmt.Fprintf(&sb, "Unifier: `%s`\n", s.Unifier)
	if len(s.Bindings) > 0 {
		sb.WriteString("\n| Variable | Term |\n|---|---|\n")
		for _, name := range sortedNames(s.Bindings) {
			fmt.Fprintf(&sb, "| %s | `%s` |\n", name, s.Bindings[name])
		}
	}
	return sb.String()
}

// sortedNames orders named variables first, then ?N by index.
func sortedNames(bindings map[string]string) []string {
	names := make([]string, 0, len(bindings))
	for n := range bindings {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		ra, rb := strings.HasPrefix(a, "?"), strings.HasPrefix(b, "?")
		if ra != rb {
			return rb
		}
		if ra && len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return names
}
