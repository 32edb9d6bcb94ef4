package reporting

import (
	"fmt"
	"strings"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RenderPeriodReport formats a period report as a WhatsApp-ready text message.
func RenderPeriodReport(report models.PeriodReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Income Report: %s*\n", report.Label)
	fmt.Fprintf(&b, "%s to %s\n\n", report.Start.Format(dateLayout), report.End.Format(dateLayout))
	fmt.Fprintf(&b, "Total income: %s\n", FormatAmount(report.TotalIncome))
	fmt.Fprintf(&b, "Entries recorded: %d\n", report.TotalEntries)
	fmt.Fprintf(&b, "Daily average: %s\n", FormatAmount(report.AverageDaily))

	if len(report.TopPerformers) > 0 {
		b.WriteString("\n*Top performers*\n")
		for i, er := range report.TopPerformers {
			fmt.Fprintf(&b, "%d. %s: %s (%d entries)\n", i+1, er.Employee.Name, FormatAmount(er.TotalIncome), er.EntryCount)
		}
	}

	appendInsights(&b, report.Insights)
	return strings.TrimRight(b.String(), "\n")
}

// RenderTrendAnalysis formats a month-over-month trend as a WhatsApp-ready
// text message.
func RenderTrendAnalysis(analysis models.TrendAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Income Trend: last %d months*\n\n", len(analysis.Points))
	for _, p := range analysis.Points {
		fmt.Fprintf(&b, "%s: %s (%d entries)\n", p.Label, FormatAmount(p.TotalIncome), p.EntryCount)
	}

	appendInsights(&b, analysis.Insights)
	return strings.TrimRight(b.String(), "\n")
}

// RenderEmployeeReports formats per-employee breakdowns for the given window
// label. An empty slice renders a friendly no-match line instead.
func RenderEmployeeReports(reports []models.EmployeeReport, label string) string {
	if len(reports) == 0 {
		return "No matching employees found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Employee Income: %s*\n", label)
	for _, er := range reports {
		fmt.Fprintf(&b, "\n*%s*\n", er.Employee.Name)
		fmt.Fprintf(&b, "Total: %s\n", FormatAmount(er.TotalIncome))
		fmt.Fprintf(&b, "Entries: %d\n", er.EntryCount)
		fmt.Fprintf(&b, "Daily average: %s\n", FormatAmount(er.AverageDaily))
		if len(er.Entries) > 0 {
			fmt.Fprintf(&b, "Latest entry: %s\n", er.Entries[0].Date.Format(dateLayout))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func appendInsights(b *strings.Builder, insights []string) {
	if len(insights) == 0 {
		return
	}
	b.WriteString("\n*Insights*\n")
	for _, line := range insights {
		fmt.Fprintf(b, "- %s\n", line)
	}
}
