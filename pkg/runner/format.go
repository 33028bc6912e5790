package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/unify/pkg/domain"
)

// Format selects how reports and solutions are written.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown or json)", s)
}

// ContentRenderer is a function that transforms markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the runner.
type ContentRenderer func(string) (string, error)

// Printer writes reports and solutions in one format.
type Printer struct {
	Writer   io.Writer
	Format   Format
	Renderer ContentRenderer
}

// PrintReport writes r.
func (p *Printer) PrintReport(r *Report) error {
	switch p.Format {
	case FormatJSON:
		data, err := RenderJSON(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Writer, string(data))
		return err
	case FormatMarkdown:
		return p.markdown(RenderMarkdown(r))
	default:
		_, err := io.WriteString(p.Writer, RenderText(r))
		return err
	}
}

// PrintSolution writes s.
func (p *Printer) PrintSolution(s *domain.Solution) error {
	switch p.Format {
	case FormatJSON:
		return json.NewEncoder(p.Writer).Encode(s)
	case FormatMarkdown:
		return p.markdown(SolutionMarkdown(s))
	default:
		_, err := io.WriteString(p.Writer, SolutionText(s))
		return err
	}
}

func (p *Printer) markdown(md string) error {
	output := md
	if p.Renderer != nil {
		if rendered, err := p.Renderer(md); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(p.Writer, strings.TrimSpace(output))
	return err
}
