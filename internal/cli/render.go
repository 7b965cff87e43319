package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/report"
)

const (
	reportBoxWidth = 64
	labelWidth     = 18
)

func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

func difficultyColor(d footprint.Difficulty) lipgloss.Color {
	switch d {
	case footprint.DifficultyEasy:
		return lipgloss.Color("42")
	case footprint.DifficultyMedium:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("196")
	}
}

// renderReport writes the human-readable report, boxed and colored when w is
// a terminal.
func renderReport(w io.Writer, r *footprint.Result, s report.Summary) error {
	if isWriterTerminal(w) {
		return renderStyledReport(w, r, s)
	}
	return renderPlainReport(w, r, s)
}

func renderStyledReport(w io.Writer, r *footprint.Result, s report.Summary) error {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Level.Color))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(reportBoxWidth)

	var b strings.Builder
	b.WriteString(titleStyle.Render("YOUR CARBON FOOTPRINT"))
	b.WriteString("\n\n")
	b.WriteString(totalStyle.Render(s.Total))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(string(s.Level.Level)))
	b.WriteString("\n")
	b.WriteString(s.Level.Description)
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("BREAKDOWN"))
	b.WriteString("\n")
	for _, sl := range s.Breakdown {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(sl.Color)).Render("■")
		b.WriteString(fmt.Sprintf("%s %s\n", swatch, breakdownLine(sl)))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("HOW YOU COMPARE"))
	b.WriteString("\n")
	for _, bar := range s.Comparison {
		b.WriteString(comparisonLine(bar))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("WHAT YOUR EMISSIONS MEAN"))
	b.WriteString("\n")
	for _, eq := range s.Equivalencies {
		b.WriteString(fmt.Sprintf("%s: %s\n", eq.Description, eq.Value()))
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("RECOMMENDATIONS"))
		for i, rec := range r.Recommendations {
			badge := lipgloss.NewStyle().Foreground(difficultyColor(rec.Difficulty)).Render(string(rec.Difficulty))
			b.WriteString(fmt.Sprintf("\n%d. %s [%s]\n", i+1, rec.Title, badge))
			b.WriteString(mutedStyle.Render(rec.Description))
			b.WriteString("\n")
			b.WriteString(savingsLine(rec))
			b.WriteString("\n")
		}
	}

	_, err := fmt.Fprintln(w, borderStyle.Render(strings.TrimRight(b.String(), "\n")))
	return err
}

func renderPlainReport(w io.Writer, r *footprint.Result, s report.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Your Carbon Footprint: %s (%s)\n", s.Total, s.Level.Level)
	fmt.Fprintf(&b, "%s\n\n", s.Level.Description)

	b.WriteString("Breakdown\n")
	for _, sl := range s.Breakdown {
		fmt.Fprintf(&b, "  %s\n", breakdownLine(sl))
	}

	b.WriteString("\nHow You Compare\n")
	for _, bar := range s.Comparison {
		fmt.Fprintf(&b, "  %s\n", comparisonLine(bar))
	}

	b.WriteString("\nWhat Your Emissions Mean\n")
	for _, eq := range s.Equivalencies {
		fmt.Fprintf(&b, "  %s: %s\n", eq.Description, eq.Value())
	}

	b.WriteString("\nRecommendations\n")
	if len(r.Recommendations) == 0 {
		b.WriteString("  none\n")
	}
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, rec.Title, rec.Difficulty)
		fmt.Fprintf(&b, "     %s\n", rec.Description)
		fmt.Fprintf(&b, "     %s\n", savingsLine(rec))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func breakdownLine(sl report.Slice) string {
	return fmt.Sprintf("%-*s %18s  %5.1f%%", labelWidth, sl.Name, report.FormatEmissions(sl.Value), sl.Percent)
}

func comparisonLine(bar report.Bar) string {
	return fmt.Sprintf("%-*s %s", labelWidth, bar.Name, report.FormatEmissions(bar.Value))
}

func savingsLine(rec footprint.Recommendation) string {
	return "Potential savings: " + report.FormatSavings(rec.PotentialSavings)
}
