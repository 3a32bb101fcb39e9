// internal/render/terminal.go
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).MarginRight(1)
	exampleBadge = lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	insightColor = map[view.InsightKind]lipgloss.Color{
		view.InsightSuccess: lipgloss.Color("46"),
		view.InsightInfo:    lipgloss.Color("39"),
		view.InsightWarning: lipgloss.Color("214"),
	}
)

// Terminal writes a styled plain-text summary of r.
func Terminal(w io.Writer, r metrics.Report, figures []plots.Status) error {
	var b strings.Builder

	header := titleStyle.Render("Hospital LOS Model Report")
	if r.IsFallback() {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, " ", exampleBadge.Render("Example data"))
	}
	b.WriteString(header + "\n\n")

	head := view.Headline(r)
	cards := []string{
		card("Model", head.ModelName),
		card("MAE", view.FormatDaysUnit(view.Some(head.MAEDays))),
		card("RMSE", view.FormatDaysUnit(view.Some(head.RMSEDays))),
		card("R²", view.FormatPercent(view.Some(head.R2))),
		card("Binned accuracy", view.FormatPercent(head.BinnedAccuracy)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	b.WriteString(titleStyle.Render("Per-bin scores and errors") + "\n")
	b.WriteString(BinTable(r) + "\n\n")

	summary := view.BinSummary(r)
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n\n",
		labelStyle.Render("Balanced accuracy"), valueStyle.Render(view.FormatPercent(summary.BalancedAccuracy)),
		labelStyle.Render("Macro F1"), valueStyle.Render(view.FormatPercent(summary.MacroF1)),
		labelStyle.Render("Macro recall"), valueStyle.Render(view.FormatPercent(view.MacroRecall(r))))

	b.WriteString(titleStyle.Render("Insights") + "\n")
	for _, insight := range view.Insights(r) {
		style := lipgloss.NewStyle().Foreground(insightColor[insight.Kind]).Bold(true)
		b.WriteString(style.Render(insight.Title) + "\n")
		for _, line := range insight.Lines {
			b.WriteString("  • " + strings.ReplaceAll(line, "**", "") + "\n")
		}
	}
	b.WriteString(labelStyle.Render(view.Takeaway(r)) + "\n\n")

	b.WriteString(titleStyle.Render("Top predictors") + "\n")
	count := 0
	for p := range view.TopPredictors(r) {
		count++
		fmt.Fprintf(&b, "  %s %s %s\n", view.DirectionArrow(p.Direction), valueStyle.Render(p.Feature), labelStyle.Render(p.Effect))
	}
	if count == 0 {
		b.WriteString(labelStyle.Render("  "+view.Placeholder) + "\n")
	}

	if len(figures) > 0 {
		b.WriteString("\n" + titleStyle.Render("Plots") + "\n")
		for _, fig := range figures {
			state := "ok"
			switch {
			case fig.Error != "":
				state = fig.Error
			case !fig.Loadable:
				state = fig.Hint
			}
			fmt.Fprintf(&b, "  %s %s\n", valueStyle.Render(fig.Name), labelStyle.Render(state))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// BinTable renders the per-bin scores and errors as a bordered table.
func BinTable(r metrics.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Bin", "Precision", "Recall", "F1", "MAE", "Median AE", "P90 AE")
	for _, bin := range metrics.Bins() {
		row := classRow(r, bin)
		t.Row(row.Bin, row.Precision, row.Recall, row.F1, row.MAE, row.MedianAE, row.P90AE)
	}
	return t.Render()
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}
