// internal/render/html.go
// Package render turns a resolved metrics report into an HTML page or a
// terminal summary. It only reads values through the view package.
package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/view"
	"github.com/yuin/goldmark"
)

// DefaultTitle is the page title used when PageOptions.Title is empty.
const DefaultTitle = "Hospital Length of Stay (LOS) Prediction Report"

// PageOptions controls how figures are referenced from the page.
type PageOptions struct {
	Title string
	// EmbedImages inlines loadable plots as data URIs so the page is
	// self-contained. Otherwise images point at PlotURLPrefix + name.
	EmbedImages   bool
	PlotURLPrefix string
}

// PageData is the view model handed to the page template.
type PageData struct {
	Title          string
	ModelName      string
	MAE            string
	RMSE           string
	R2             string
	BinnedAccuracy string
	ExampleData    bool
	Diagnostic     string
	ArtifactPath   string

	Intro          template.HTML
	Framing        template.HTML
	Bias           template.HTML
	Evidence       template.HTML
	Interpretation template.HTML
	Action         template.HTML
	PredictorsNote template.HTML
	Outcome        template.HTML
	Recommendation template.HTML

	HasBinMetrics bool
	Summary       []ScoreRow
	Classes       []ClassRow
	Insights      []InsightBlock
	Takeaway      string
	AccuracyClaim string

	Predictors []PredictorRow
	Figures    []FigureBlock

	ReportJSON template.JS
}

// ScoreRow is one line of the binned classification summary table.
type ScoreRow struct {
	Metric string
	Score  string
}

// ClassRow joins the per-class scores and per-bin errors for one bin.
type ClassRow struct {
	Bin       string
	Precision string
	Recall    string
	F1        string
	MAE       string
	MedianAE  string
	P90AE     string
}

// InsightBlock is a rendered callout.
type InsightBlock struct {
	Kind string
	Body template.HTML
}

// PredictorRow is one entry of the top predictors list.
type PredictorRow struct {
	Feature string
	Arrow   string
	Effect  string
}

// FigureBlock is a plot with its resolved image source.
type FigureBlock struct {
	plots.Status
	Src template.URL
}

var markdown = goldmark.New()

func markdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// BuildPage assembles the page view model.
func BuildPage(r metrics.Report, figures []plots.Status, opts PageOptions) (PageData, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	head := view.Headline(r)
	summary := view.BinSummary(r)

	page := PageData{
		Title:          title,
		ModelName:      head.ModelName,
		MAE:            view.FormatDaysUnit(view.Some(head.MAEDays)),
		RMSE:           view.FormatDaysUnit(view.Some(head.RMSEDays)),
		R2:             view.FormatPercent(view.Some(head.R2)),
		BinnedAccuracy: view.FormatPercent(head.BinnedAccuracy),
		ExampleData:    head.ExampleData,
		Diagnostic:     r.Diagnostic,
		ArtifactPath:   r.Path,
		HasBinMetrics:  r.BinMetrics != nil,
		Takeaway:       view.Takeaway(r),
	}

	if acc, ok := head.BinnedAccuracy.Get(); ok {
		page.AccuracyClaim = fmt.Sprintf("The model correctly predicts the right LOS category %.0f%% of the time", acc*100)
	}

	sections := []struct {
		dst *template.HTML
		src string
	}{
		{&page.Intro, introMarkdown},
		{&page.Framing, framingMarkdown},
		{&page.Bias, biasMarkdown},
		{&page.Evidence, evidenceMarkdown},
		{&page.Interpretation, interpretationMarkdown},
		{&page.Action, actionMarkdown},
		{&page.PredictorsNote, predictorsMarkdown},
		{&page.Outcome, fmt.Sprintf(outcomeMarkdown, page.R2)},
		{&page.Recommendation, recommendationMarkdown},
	}
	for _, s := range sections {
		html, err := markdownHTML(s.src)
		if err != nil {
			return PageData{}, fmt.Errorf("render markdown: %w", err)
		}
		*s.dst = html
	}

	page.Summary = []ScoreRow{
		{Metric: "Binned accuracy", Score: view.FormatPercent(summary.BinnedAccuracy)},
		{Metric: "Balanced accuracy", Score: view.FormatPercent(summary.BalancedAccuracy)},
		{Metric: "Macro F1", Score: view.FormatPercent(summary.MacroF1)},
		{Metric: "Macro recall", Score: view.FormatPercent(view.MacroRecall(r))},
	}

	for _, bin := range metrics.Bins() {
		page.Classes = append(page.Classes, classRow(r, bin))
	}

	for _, insight := range view.Insights(r) {
		md := "**" + insight.Title + "**\n\n- " + strings.Join(insight.Lines, "\n- ")
		html, err := markdownHTML(md)
		if err != nil {
			return PageData{}, fmt.Errorf("render insight: %w", err)
		}
		page.Insights = append(page.Insights, InsightBlock{Kind: string(insight.Kind), Body: html})
	}

	for p := range view.TopPredictors(r) {
		feature := strings.TrimSpace(p.Feature)
		if feature == "" {
			feature = "Feature"
		}
		page.Predictors = append(page.Predictors, PredictorRow{
			Feature: feature,
			Arrow:   view.DirectionArrow(p.Direction),
			Effect:  p.Effect,
		})
	}

	for _, status := range figures {
		page.Figures = append(page.Figures, figureBlock(status, opts))
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return PageData{}, fmt.Errorf("marshal report: %w", err)
	}
	page.ReportJSON = template.JS(payload)
	return page, nil
}

func classRow(r metrics.Report, bin string) ClassRow {
	scores := view.ClassScores(r, bin)
	row := ClassRow{
		Bin:       bin,
		Precision: view.FormatPercent(scores.Precision),
		Recall:    view.FormatPercent(scores.Recall),
		F1:        view.FormatPercent(scores.F1),
		MAE:       view.Placeholder,
		MedianAE:  view.Placeholder,
		P90AE:     view.Placeholder,
	}
	if es, ok := view.BinErrorStats(r, bin).Get(); ok {
		row.MAE = view.FormatDays(view.Some(es.MAE))
		row.MedianAE = view.FormatDays(view.Some(es.MedianAE))
		row.P90AE = view.FormatDays(view.Some(es.P90AE))
	}
	return row
}

func figureBlock(status plots.Status, opts PageOptions) FigureBlock {
	block := FigureBlock{Status: status}
	if !status.Loadable {
		return block
	}
	if !opts.EmbedImages {
		block.Src = template.URL(opts.PlotURLPrefix + status.Name)
		return block
	}
	data, err := os.ReadFile(status.Path)
	if err != nil {
		block.Loadable = false
		block.Error = fmt.Sprintf("Could not open `%s`: %v", status.Name, err)
		return block
	}
	block.Src = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	return block
}

// HTML writes the complete page for r to w.
func HTML(w io.Writer, r metrics.Report, figures []plots.Status, opts PageOptions) error {
	page, err := BuildPage(r, figures, opts)
	if err != nil {
		return err
	}
	return pageTemplate.Execute(w, page)
}

var pageTemplate = template.Must(template.New("los-report").Parse(pageTemplateHTML))
