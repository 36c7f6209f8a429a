package analytics

import (
	"strings"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// stageKeywords единственное место, где статус сопоставляется со стадиями воронки.
// Сравнение по подстроке без учета регистра, стадии не исключают друг друга.
var stageKeywords = []struct {
	tag     models.StageTag
	keyword string
	label   string
}{
	{models.StageFresh, "fresh", "Fresh"},
	{models.StageLost, "lost", "Lost"},
	{models.StageDocsReceived, "docs received", "Docs Received"},
	{models.StageApplicationFiled, "application filed", "Application Filed"},
	{models.StageDeposit, "deposit", "Deposit"},
	{models.StageRegisteredToUniversity, "registered to university", "Registered to University"},
	{models.StageEnrolled, "enrolled", "Enrolled"},
}

// StageSet битовая маска стадий
type StageSet uint16

func ClassifyStage(status string) StageSet {
	status = strings.ToLower(status)
	var set StageSet
	for i, stage := range stageKeywords {
		if strings.Contains(status, stage.keyword) {
			set |= 1 << uint(i)
		}
	}
	return set
}

func (s StageSet) Has(tag models.StageTag) bool {
	for i, stage := range stageKeywords {
		if stage.tag == tag {
			return s&(1<<uint(i)) != 0
		}
	}
	return false
}

func (s StageSet) Tags() []models.StageTag {
	tags := make([]models.StageTag, 0, len(stageKeywords))
	for i, stage := range stageKeywords {
		if s&(1<<uint(i)) != 0 {
			tags = append(tags, stage.tag)
		}
	}
	return tags
}

// IsConverted зарегистрирован в университете или зачислен
func (s StageSet) IsConverted() bool {
	return s.Has(models.StageRegisteredToUniversity) || s.Has(models.StageEnrolled)
}

func StageLabel(tag models.StageTag) string {
	for _, stage := range stageKeywords {
		if stage.tag == tag {
			return stage.label
		}
	}
	return string(tag)
}

func IsLost(lead models.LeadRecord) bool {
	return ClassifyStage(lead.Status).Has(models.StageLost)
}

func IsFresh(lead models.LeadRecord) bool {
	return ClassifyStage(lead.Status).Has(models.StageFresh)
}

func IsConverted(lead models.LeadRecord) bool {
	return ClassifyStage(lead.Status).IsConverted()
}
