package analytics

import (
	"strings"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// AssigneeFunnel считает стадии воронки одного консультанта.
// Запись со статусом "docs received, application filed" попадает в обе стадии.
func AssigneeFunnel(leads []models.LeadRecord, assignee string) models.FunnelReport {
	name := strings.TrimSpace(assignee)
	if name == "" {
		name = Unassigned
	}

	report := models.FunnelReport{Assignee: name}
	stageCounts := make([]int, len(stageKeywords))
	for _, lead := range leads {
		key := AssigneeKey(lead)
		if !strings.EqualFold(key, name) {
			continue
		}
		if report.Total == 0 {
			report.Assignee = key
		}
		report.Total++

		set := ClassifyStage(lead.Status)
		for i, stage := range stageKeywords {
			if set.Has(stage.tag) {
				stageCounts[i]++
			}
		}
		if set.IsConverted() {
			report.Converted++
		}
	}

	report.Stages = make([]models.CategoryCount, 0, len(stageKeywords))
	for i, stage := range stageKeywords {
		report.Stages = append(report.Stages, models.CategoryCount{
			Name:       stage.label,
			Value:      stageCounts[i],
			Percentage: percentOf(stageCounts[i], report.Total),
		})
	}
	report.ConversionRate = percentOf(report.Converted, report.Total)
	return report
}

// CounselorPerformance воронки консультантов с наибольшим числом лидов
func CounselorPerformance(leads []models.LeadRecord, limit int) []models.FunnelReport {
	assignees := ByAssignee(leads, limit)
	reports := make([]models.FunnelReport, 0, len(assignees))
	for _, a := range assignees {
		reports = append(reports, AssigneeFunnel(leads, a.Name))
	}
	return reports
}
