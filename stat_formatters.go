package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

const noDataText = "No leads for this selection."

// длинные названия объявлений ломают моноширинную таблицу в телеграме
const maxNameWidth = 28

func newTable(title string) table.Writer {
	t := table.NewWriter()
	if title != "" {
		t.SetTitle(title)
	}
	t.SetStyle(table.StyleDefault)
	return t
}

func GenerateCategoryTable(title string, counts []models.CategoryCount) string {
	if len(counts) == 0 {
		return title + "\n" + noDataText
	}
	t := newTable(title)
	t.AppendHeader(table.Row{"#", "Name", "Leads", "%"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: maxNameWidth}})
	total := 0
	for i, c := range counts {
		t.AppendRow(table.Row{i + 1, c.Name, c.Value, fmt.Sprintf("%d%%", c.Percentage)})
		total += c.Value
	}
	t.AppendFooter(table.Row{"", "Shown", total, ""})
	return t.Render()
}

func GenerateTimelineTable(title string, buckets []models.TimeBucketCount) string {
	if len(buckets) == 0 {
		return title + "\n" + noDataText
	}
	t := newTable(title)
	t.AppendHeader(table.Row{"Period", "Leads"})
	total := 0
	for _, b := range buckets {
		t.AppendRow(table.Row{b.Name, b.Value})
		total += b.Value
	}
	t.AppendFooter(table.Row{"Total", total})
	return t.Render()
}

func formatChange(stat models.ScorecardStat) string {
	switch stat.State {
	case models.StatNoData:
		return "no data"
	case models.StatUnavailable:
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", stat.ChangePercent)
}

func GenerateScorecardTable(cards []models.ScorecardStat) string {
	t := newTable("")
	t.AppendHeader(table.Row{"Metric", "Value", "Change"})
	for _, c := range cards {
		value := fmt.Sprint(c.Value)
		if c.State != models.StatOK {
			value = "-"
		}
		t.AppendRow(table.Row{c.Title, value, formatChange(c)})
	}
	return t.Render()
}

func GenerateFunnelTable(report models.FunnelReport) string {
	if report.Total == 0 {
		return fmt.Sprintf("No leads assigned to %s.", report.Assignee)
	}
	t := newTable(fmt.Sprintf("Funnel: %s (%d leads)", report.Assignee, report.Total))
	t.AppendHeader(table.Row{"Stage", "Leads", "%"})
	for _, s := range report.Stages {
		t.AppendRow(table.Row{s.Name, s.Value, fmt.Sprintf("%d%%", s.Percentage)})
	}
	t.AppendFooter(table.Row{"Converted", report.Converted, fmt.Sprintf("%d%%", report.ConversionRate)})
	return t.Render()
}

func GenerateCounselorTable(reports []models.FunnelReport) string {
	if len(reports) == 0 {
		return "Counselor performance\n" + noDataText
	}
	t := newTable("Counselor performance")
	t.AppendHeader(table.Row{"Counselor", "Leads", "Lost", "Converted", "Rate"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, WidthMax: maxNameWidth}})
	for _, r := range reports {
		t.AppendRow(table.Row{r.Assignee, r.Total, stageValue(r, analytics.StageLabel(models.StageLost)), r.Converted, fmt.Sprintf("%d%%", r.ConversionRate)})
	}
	return t.Render()
}

func stageValue(report models.FunnelReport, label string) int {
	for _, s := range report.Stages {
		if s.Name == label {
			return s.Value
		}
	}
	return 0
}

func GenerateHistoryTable(runs []models.IngestRun) string {
	if len(runs) == 0 {
		return "No uploads yet."
	}
	t := newTable("Uploads")
	t.AppendHeader(table.Row{"Time", "File", "Rows", "Leads", "Dropped", "Result"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: maxNameWidth}})
	for _, run := range runs {
		result := "ok"
		if run.Error != "" {
			result = "failed"
		}
		t.AppendRow(table.Row{run.CreatedAt.Format("2006-01-02 15:04"), run.FileName, run.TotalRows, run.Leads, run.DroppedRows, result})
	}
	return t.Render()
}

// GenerateIngestSummary короткий итог загрузки для ответа пользователю
func GenerateIngestSummary(snapshot *analytics.Snapshot) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "File %s loaded.\n", snapshot.FileName)
	fmt.Fprintf(b, "Rows: %d, leads: %d", snapshot.TotalRows, len(snapshot.Leads))
	if snapshot.SkippedEmpty > 0 {
		fmt.Fprintf(b, ", empty rows skipped: %d", snapshot.SkippedEmpty)
	}
	if snapshot.DroppedRows > 0 {
		fmt.Fprintf(b, ", dropped without a valid Created On: %d", snapshot.DroppedRows)
	}
	b.WriteString(".")
	return b.String()
}

// GenerateDashboardText сводка для /summary
func GenerateDashboardText(d models.Dashboard) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s, window %s: %d of %d leads\n", d.FileName, d.Window, d.WindowLeads, d.TotalLeads)
	b.WriteString(GenerateScorecardTable(d.Scorecards))
	b.WriteString("\n")
	b.WriteString(GenerateCategoryTable("Status", d.Status))
	return b.String()
}
