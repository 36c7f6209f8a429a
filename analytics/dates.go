package analytics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// createdOnLayouts форматы, которые встречаются в выгрузках помимо формата CRM.
// Порядок важен: первым срабатывает более точный формат.
var createdOnLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 02 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
}

// хвост вида " (India Standard Time)" из Date.toString()
var zoneNameSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// layout PM в Go понимает только верхний регистр
var meridiemSuffix = regexp.MustCompile(`(?i)\s(am|pm)$`)

// ParseCreatedOn разбирает значение колонки Created On.
// Сначала проверяется формат CRM "DD-MM-YYYY hh:mm:ss am|pm", затем общие форматы.
func ParseCreatedOn(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, ok := parsePipelineDate(value, loc); ok {
		return t, true
	}

	value = zoneNameSuffix.ReplaceAllString(value, "")
	value = meridiemSuffix.ReplaceAllStringFunc(value, strings.ToUpper)
	for _, layout := range createdOnLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePipelineDate "15-05-2025 12:06:07 pm": 12-часовой формат переводится в 24-часовой,
// pm и час != 12 дает +12, am и час == 12 дает 0, час 00 допускается. Без am/pm время
// считается 24-часовым.
func parsePipelineDate(value string, loc *time.Location) (time.Time, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, false
	}

	dateParts := strings.Split(parts[0], "-")
	timeParts := strings.Split(parts[1], ":")
	if len(dateParts) != 3 || len(timeParts) != 3 || len(dateParts[2]) != 4 {
		return time.Time{}, false
	}

	day, ok1 := atoi(dateParts[0])
	month, ok2 := atoi(dateParts[1])
	year, ok3 := atoi(dateParts[2])
	hour, ok4 := atoi(timeParts[0])
	minute, ok5 := atoi(timeParts[1])
	second, ok6 := atoi(timeParts[2])
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return time.Time{}, false
	}

	if len(parts) == 3 {
		if hour > 12 {
			return time.Time{}, false
		}
		switch strings.ToLower(parts[2]) {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		default:
			return time.Time{}, false
		}
	}

	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
