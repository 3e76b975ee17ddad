// Package report renders update check results for a terminal or a log.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/ui/output"
	"go.trai.ch/drift/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter by writing one section per project.
type Reporter struct {
	out *termenv.Output
}

// NewReporter creates a Reporter writing to w with the given color profile.
func NewReporter(w io.Writer, profile termenv.Profile) *Reporter {
	return &Reporter{
		out: output.NewWithProfile(w, func() termenv.Profile { return profile }),
	}
}

// Report writes the section of one project.
func (r *Reporter) Report(rep domain.Report) error {
	var b strings.Builder

	b.WriteString(r.out.String(rep.Project).Bold().Foreground(color(style.Iris)).String())
	b.WriteString("\n")

	for _, line := range rep.Outdated {
		r.line(&b, style.Up, style.Yellow, line)
	}

	if rep.UpToDate > 0 || (len(rep.Outdated) == 0 && len(rep.Failed) == 0) {
		r.line(&b, style.Check, style.Green, fmt.Sprintf("%s up to date", plural(rep.UpToDate, "dependency", "dependencies")))
	}

	for _, line := range rep.Failed {
		r.line(&b, style.Cross, style.Red, line)
	}

	b.WriteString("\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Reporter) line(b *strings.Builder, icon string, c lipgloss.Color, text string) {
	b.WriteString("  ")
	b.WriteString(r.out.String(icon).Foreground(color(c)).String())
	b.WriteString(" ")
	b.WriteString(text)
	b.WriteString("\n")
}

func color(c lipgloss.Color) termenv.Color {
	return termenv.RGBColor(string(c))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
