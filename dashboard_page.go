package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

func scorecardSubtitle(stats []models.ScorecardStat) string {
	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		parts = append(parts, fmt.Sprintf("%s: %d (%s)", stat.Title, stat.Value, formatChange(stat)))
	}
	return strings.Join(parts, " | ")
}

func categoryBar(title string, series []models.CategoryCount) *charts.Bar {
	names := make([]string, 0, len(series))
	data := make([]opts.BarData, 0, len(series))
	for _, c := range series {
		names = append(names, c.Name)
		data = append(data, opts.BarData{Value: c.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(names).AddSeries("Leads", data)
	return bar
}

func statusPie(d models.Dashboard) *charts.Pie {
	data := make([]opts.PieData, 0, len(d.Status))
	for _, c := range d.Status {
		data = append(data, opts.PieData{Name: c.Name, Value: c.Value})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: d.FileName, Subtitle: scorecardSubtitle(d.Scorecards)}))
	pie.AddSeries("Status", data)
	return pie
}

func timelineChart(d models.Dashboard) *charts.Line {
	names := make([]string, 0, len(d.Timeline))
	data := make([]opts.LineData, 0, len(d.Timeline))
	for _, b := range d.Timeline {
		names = append(names, b.Name)
		data = append(data, opts.LineData{Value: b.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: timelineTitle(d.Granularity)}))
	line.SetXAxis(names).AddSeries("Leads", data)
	return line
}

func conversionBar(reports []models.FunnelReport) *charts.Bar {
	names := make([]string, 0, len(reports))
	data := make([]opts.BarData, 0, len(reports))
	for _, r := range reports {
		names = append(names, r.Assignee)
		data = append(data, opts.BarData{Value: r.ConversionRate})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Conversion by counselor, %"}))
	bar.SetXAxis(names).AddSeries("Conversion", data)
	return bar
}

// renderDashboardPage HTML-страница с интерактивными графиками одного дашборда
func renderDashboardPage(w io.Writer, d models.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = "Leads: " + d.FileName
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(statusPie(d), timelineChart(d))
	for _, view := range viewOrder {
		v := categoryViews[view]
		series := v.Series(d)
		if len(series) == 0 {
			continue
		}
		page.AddCharts(categoryBar(v.Title, series))
	}
	if len(d.Counselors) > 0 {
		page.AddCharts(conversionBar(d.Counselors))
	}
	return page.Render(w)
}
