// internal/tui/model.go
// Package tui is the interactive terminal viewer for a metrics report.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/render"
	"github.com/mwiater/losdash/internal/util"
	"github.com/mwiater/losdash/internal/view"
)

type tab int

const (
	tabOverview tab = iota
	tabBins
	tabPredictors
)

const (
	featureWidth = 36
	effectWidth  = 40
)

var tabNames = []string{"Overview", "Bins", "Predictors"}

var (
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")).Padding(0, 1)
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ReportMsg replaces the displayed report, e.g. after the artifact changed.
type ReportMsg struct {
	Report  metrics.Report
	Figures []plots.Status
}

// Loader re-resolves the report when the user asks for a reload.
type Loader func() (metrics.Report, []plots.Status)

type model struct {
	report  metrics.Report
	figures []plots.Status
	load    Loader

	active     tab
	overview   viewport.Model
	bins       table.Model
	predictors table.Model
	width      int
	height     int
}

func newModel(r metrics.Report, figures []plots.Status, load Loader) *model {
	m := &model{
		load:     load,
		overview: viewport.New(100, 20),
		bins: table.New(
			table.WithColumns([]table.Column{
				{Title: "Bin", Width: 10},
				{Title: "Precision", Width: 10},
				{Title: "Recall", Width: 8},
				{Title: "F1", Width: 7},
				{Title: "MAE", Width: 6},
				{Title: "Median AE", Width: 10},
				{Title: "P90 AE", Width: 7},
			}),
			table.WithFocused(true),
			table.WithHeight(5),
		),
		predictors: table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 3},
				{Title: "", Width: 2},
				{Title: "Feature", Width: featureWidth},
				{Title: "Effect", Width: effectWidth},
			}),
			table.WithFocused(true),
			table.WithHeight(8),
		),
	}
	m.setReport(r, figures)
	return m
}

func (m *model) setReport(r metrics.Report, figures []plots.Status) {
	m.report = r
	m.figures = figures

	var b strings.Builder
	if err := render.Terminal(&b, r, figures); err != nil {
		fmt.Fprintf(&b, "render failed: %v", err)
	}
	m.overview.SetContent(b.String())

	rows := make([]table.Row, 0, len(metrics.Bins()))
	for _, bin := range metrics.Bins() {
		scores := view.ClassScores(r, bin)
		row := table.Row{bin, view.FormatPercent(scores.Precision), view.FormatPercent(scores.Recall), view.FormatPercent(scores.F1)}
		es := view.BinErrorStats(r, bin)
		if v, ok := es.Get(); ok {
			row = append(row, view.FormatDays(view.Some(v.MAE)), view.FormatDays(view.Some(v.MedianAE)), view.FormatDays(view.Some(v.P90AE)))
		} else {
			row = append(row, view.Placeholder, view.Placeholder, view.Placeholder)
		}
		rows = append(rows, row)
	}
	m.bins.SetRows(rows)

	var preds []table.Row
	for p := range view.TopPredictors(r) {
		preds = append(preds, table.Row{
			fmt.Sprint(len(preds) + 1),
			view.DirectionArrow(p.Direction),
			util.TruncateRunes(p.Feature, featureWidth),
			util.TruncateRunes(p.Effect, effectWidth),
		})
	}
	m.predictors.SetRows(preds)
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % tab(len(tabNames))
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
			return m, nil
		case "r":
			if m.load != nil {
				load := m.load
				return m, func() tea.Msg {
					r, figures := load()
					return ReportMsg{Report: r, Figures: figures}
				}
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.overview.Width = msg.Width
		m.overview.Height = max(msg.Height-4, 1)
		return m, nil
	case ReportMsg:
		m.setReport(msg.Report, msg.Figures)
		return m, nil
	}

	switch m.active {
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabBins:
		m.bins, cmd = m.bins.Update(msg)
	case tabPredictors:
		m.predictors, cmd = m.predictors.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *model) View() string {
	var tabs []string
	for i, name := range tabNames {
		if tab(i) == m.active {
			tabs = append(tabs, activeTab.Render(name))
		} else {
			tabs = append(tabs, inactiveTab.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.report.IsFallback() {
		header += "  " + helpStyle.Render("(example data)")
	}

	var body string
	switch m.active {
	case tabOverview:
		body = m.overview.View()
	case tabBins:
		body = m.bins.View()
	case tabPredictors:
		if len(m.predictors.Rows()) == 0 {
			body = view.Placeholder
		} else {
			body = m.predictors.View()
		}
	}

	help := helpStyle.Render("tab: switch view • r: reload • q: quit")
	return header + "\n\n" + body + "\n\n" + help + "\n"
}

// Run starts the viewer and blocks until the user quits or ctx is done.
// updates delivers replacement reports, typically from the artifact watcher.
func Run(ctx context.Context, r metrics.Report, figures []plots.Status, load Loader, updates <-chan ReportMsg) error {
	p := tea.NewProgram(newModel(r, figures, load), tea.WithAltScreen(), tea.WithContext(ctx))
	if updates != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-updates:
					if !ok {
						return
					}
					p.Send(msg)
				}
			}
		}()
	}
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
