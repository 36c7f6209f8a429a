package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

type SortOrder int

const (
	// Descending по убыванию, первые N
	Descending SortOrder = iota
	// Ascending по возрастанию, последние N (те же N крупнейших групп в обратном порядке)
	Ascending
)

type KeyFunc func(lead models.LeadRecord) string

type AggregateOptions struct {
	Exclude func(key string) bool             // ключи, которые не считаются
	Filter  func(lead models.LeadRecord) bool // предварительный отбор записей
	Order   SortOrder
	Limit   int // 0 без ограничения
}

// AggregateBy группирует записи по ключу и считает доли.
// Проценты считаются от суммы всех групп до усечения, поэтому top-N не обязан давать 100.
func AggregateBy(leads []models.LeadRecord, key KeyFunc, opts AggregateOptions) []models.CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	total := 0

	for _, lead := range leads {
		if opts.Filter != nil && !opts.Filter(lead) {
			continue
		}
		k := key(lead)
		if k == "" || (opts.Exclude != nil && opts.Exclude(k)) {
			continue
		}
		if _, exists := counts[k]; !exists {
			order = append(order, k)
		}
		counts[k]++
		total++
	}

	result := make([]models.CategoryCount, 0, len(order))
	for _, k := range order {
		result = append(result, models.CategoryCount{
			Name:       k,
			Value:      counts[k],
			Percentage: percentOf(counts[k], total),
		})
	}

	if opts.Order == Ascending {
		sort.SliceStable(result, func(i, j int) bool { return result[i].Value < result[j].Value })
		if opts.Limit > 0 && len(result) > opts.Limit {
			result = result[len(result)-opts.Limit:]
		}
		return result
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Value > result[j].Value })
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

func percentOf(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}

func ByStatus(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return strings.TrimSpace(l.Status)
	}, AggregateOptions{Limit: limit})
}

func ByAssignee(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, AssigneeKey, AggregateOptions{Limit: limit})
}

func ByCity(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return NormalizeCity(l.City)
	}, AggregateOptions{Limit: limit})
}

func ByAd(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return strings.TrimSpace(l.FacebookAd)
	}, AggregateOptions{Exclude: isPlaceholder, Limit: limit})
}

func ByCampaign(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return strings.TrimSpace(l.FacebookCampaign)
	}, AggregateOptions{Exclude: isPlaceholder, Limit: limit})
}

func ByLossReason(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return strings.TrimSpace(l.LostReason)
	}, AggregateOptions{Filter: IsLost, Exclude: isPlaceholder, Limit: limit})
}

func LostByAssignee(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, AssigneeKey, AggregateOptions{Filter: IsLost, Limit: limit})
}

func ByPreference(leads []models.LeadRecord, limit int) []models.CategoryCount {
	return AggregateBy(leads, func(l models.LeadRecord) string {
		return NormalizePreference(l.StudentPreference)
	}, AggregateOptions{Limit: limit})
}
