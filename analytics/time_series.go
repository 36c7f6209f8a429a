package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// BucketByTime группирует записи по дням, неделям, месяцам или годам относительно текущего момента
func BucketByTime(leads []models.LeadRecord, granularity models.Granularity) []models.TimeBucketCount {
	return BucketByTimeAt(leads, granularity, time.Now())
}

// BucketByTimeAt пустые периоды не добавляются. Недельная группировка берет только
// записи текущего календарного месяца. Записи с одинаковой подписью (15 Mar разных лет)
// попадают в один период, его ключ сортировки наименьший из встреченных.
func BucketByTimeAt(leads []models.LeadRecord, granularity models.Granularity, at time.Time) []models.TimeBucketCount {
	counts := make(map[string]*models.TimeBucketCount)
	for _, lead := range leads {
		date := lead.ParsedDate
		if granularity == models.Weekly && !sameMonth(date, at) {
			continue
		}
		label, key := bucketOf(date, granularity)
		if bucket, ok := counts[label]; ok {
			bucket.Value++
			if key < bucket.Key {
				bucket.Key = key
			}
			continue
		}
		counts[label] = &models.TimeBucketCount{Name: label, Key: key, Value: 1}
	}

	result := make([]models.TimeBucketCount, 0, len(counts))
	for _, bucket := range counts {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// bucketOf подпись и ключ сортировки; ключи дополнены нулями, поэтому сравниваются как строки
func bucketOf(date time.Time, granularity models.Granularity) (label, key string) {
	switch granularity {
	case models.Daily:
		return date.Format("2 Jan"), date.Format("2006-01-02")
	case models.Weekly:
		_, week := date.ISOWeek()
		return fmt.Sprintf("Week %d", week), fmt.Sprintf("%d-%02d-W%02d", date.Year(), date.Month(), week)
	case models.Yearly:
		return date.Format("2006"), date.Format("2006")
	default:
		return date.Format("Jan 2006"), date.Format("2006-01")
	}
}

func sameMonth(date, at time.Time) bool {
	y1, m1, _ := date.Date()
	y2, m2, _ := at.In(date.Location()).Date()
	return y1 == y2 && m1 == m2
}
