package analytics

import (
	"math"
	"time"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

const (
	TitleTotalLeads     = "Total Leads"
	TitleLostLeads      = "Lost Leads"
	TitleConvertedLeads = "Converted Leads"
	TitleFreshLeads     = "Fresh Leads"
	TitleTimeToLoss     = "Avg. Time to Loss"
)

// ComputeStat значение за текущий период и изменение к предыдущему в процентах с одним знаком.
// Знак сохраняется, трактовка роста остается за потребителем.
func ComputeStat(current, prior []models.LeadRecord, predicate func(models.LeadRecord) bool) models.ScorecardStat {
	value := countMatching(current, predicate)
	previous := countMatching(prior, predicate)
	return models.ScorecardStat{
		Value:         value,
		ChangePercent: changePercent(value, previous),
		State:         models.StatOK,
	}
}

func countMatching(leads []models.LeadRecord, predicate func(models.LeadRecord) bool) int {
	if predicate == nil {
		return len(leads)
	}
	count := 0
	for _, lead := range leads {
		if predicate(lead) {
			count++
		}
	}
	return count
}

func changePercent(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round(float64(current-previous)/float64(previous)*1000) / 10
}

// Scorecards набор карточек для окна. Пустая коллекция дает no_data во всех карточках.
// Время до потери всегда unavailable: в выгрузке нет отметки времени потери лида.
func Scorecards(leads []models.LeadRecord, w models.Window, at time.Time, cal Calendar) []models.ScorecardStat {
	cards := []struct {
		title     string
		predicate func(models.LeadRecord) bool
	}{
		{TitleTotalLeads, nil},
		{TitleLostLeads, IsLost},
		{TitleConvertedLeads, IsConverted},
		{TitleFreshLeads, IsFresh},
	}

	result := make([]models.ScorecardStat, 0, len(cards)+1)
	if len(leads) == 0 {
		for _, card := range cards {
			result = append(result, models.ScorecardStat{Title: card.title, State: models.StatNoData})
		}
		return append(result, models.ScorecardStat{Title: TitleTimeToLoss, State: models.StatNoData})
	}

	current := FilterByWindowAt(leads, w, at, cal)
	var prior []models.LeadRecord
	if prev, ok := cal.PreviousWindow(w, at); ok {
		prior = FilterByWindowAt(leads, prev, at, cal)
	}

	for _, card := range cards {
		stat := ComputeStat(current, prior, card.predicate)
		stat.Title = card.title
		result = append(result, stat)
	}
	return append(result, models.ScorecardStat{Title: TitleTimeToLoss, State: models.StatUnavailable})
}
