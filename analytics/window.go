package analytics

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

var ErrUnknownWindow = errors.New("unknown time window")

const dateOnlyFormat = "2006-01-02"

// Calendar задает часовой пояс и первый день недели для календарных окон
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func DefaultCalendar() Calendar {
	return Calendar{Location: time.Local, WeekStart: time.Monday}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) at(t time.Time) *now.Now {
	cfg := &now.Config{WeekStartDay: c.WeekStart, TimeLocation: c.location()}
	return cfg.With(t.In(c.location()))
}

// Bounds возвращает включительный интервал окна относительно момента at.
// Для AllTime ok == false.
func (c Calendar) Bounds(w models.Window, at time.Time) (start, end time.Time, ok bool) {
	n := c.at(at)
	switch w.Kind {
	case models.WindowToday:
		return n.BeginningOfDay(), n.EndOfDay(), true
	case models.WindowThisWeek:
		return n.BeginningOfWeek(), n.EndOfWeek(), true
	case models.WindowThisMonth:
		return n.BeginningOfMonth(), n.EndOfMonth(), true
	case models.WindowThisYear:
		return n.BeginningOfYear(), n.EndOfYear(), true
	case models.WindowLast7Days:
		return at.AddDate(0, 0, -7), at, true
	case models.WindowLast30Days:
		return at.AddDate(0, 0, -30), at, true
	case models.WindowCustom:
		end = w.End
		if end.IsZero() {
			end = at
		}
		return w.Start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// PreviousWindow предыдущий период той же длины: для календарных окон
// прошлый день/неделя/месяц/год, для скользящих и custom интервал той же длительности перед началом.
func (c Calendar) PreviousWindow(w models.Window, at time.Time) (models.Window, bool) {
	start, end, ok := c.Bounds(w, at)
	if !ok {
		return models.Window{}, false
	}

	switch w.Kind {
	case models.WindowToday, models.WindowThisWeek, models.WindowThisMonth, models.WindowThisYear:
		prevStart, prevEnd, _ := c.Bounds(models.Window{Kind: w.Kind}, start.Add(-time.Nanosecond))
		return models.Window{Kind: models.WindowCustom, Start: prevStart, End: prevEnd}, true
	}

	length := end.Sub(start)
	return models.Window{
		Kind:  models.WindowCustom,
		Start: start.Add(-length),
		End:   start.Add(-time.Nanosecond),
	}, true
}

// FilterByWindow оставляет записи, попавшие в окно, относительно текущего момента
func FilterByWindow(leads []models.LeadRecord, w models.Window) []models.LeadRecord {
	return FilterByWindowAt(leads, w, time.Now(), DefaultCalendar())
}

// FilterByWindowAt для AllTime возвращает исходный срез без копирования
func FilterByWindowAt(leads []models.LeadRecord, w models.Window, at time.Time, cal Calendar) []models.LeadRecord {
	start, end, ok := cal.Bounds(w, at)
	if !ok {
		return leads
	}
	return filterByRange(leads, start, end)
}

func filterByRange(leads []models.LeadRecord, start, end time.Time) []models.LeadRecord {
	result := make([]models.LeadRecord, 0, len(leads))
	for _, lead := range leads {
		if lead.ParsedDate.Before(start) || lead.ParsedDate.After(end) {
			continue
		}
		result = append(result, lead)
	}
	return result
}

// ParseWindow разбирает имя окна из запроса. from/to в формате 2006-01-02 нужны только для custom.
func ParseWindow(name, from, to string, loc *time.Location) (models.Window, error) {
	if loc == nil {
		loc = time.Local
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all", "all_time", "alltime":
		return models.Window{Kind: models.WindowAllTime}, nil
	case "7d", "last_7_days", "last7days":
		return models.Window{Kind: models.WindowLast7Days}, nil
	case "30d", "last_30_days", "last30days":
		return models.Window{Kind: models.WindowLast30Days}, nil
	case "month", "this_month", "thismonth":
		return models.Window{Kind: models.WindowThisMonth}, nil
	case "week", "this_week", "thisweek":
		return models.Window{Kind: models.WindowThisWeek}, nil
	case "today":
		return models.Window{Kind: models.WindowToday}, nil
	case "year", "this_year", "thisyear":
		return models.Window{Kind: models.WindowThisYear}, nil
	case "custom":
		start, err := time.ParseInLocation(dateOnlyFormat, strings.TrimSpace(from), loc)
		if err != nil {
			return models.Window{}, errors.Wrap(err, "custom window start")
		}
		end, err := time.ParseInLocation(dateOnlyFormat, strings.TrimSpace(to), loc)
		if err != nil {
			return models.Window{}, errors.Wrap(err, "custom window end")
		}
		if end.Before(start) {
			start, end = end, start
		}
		return models.Window{
			Kind:  models.WindowCustom,
			Start: start,
			End:   now.With(end).EndOfDay(),
		}, nil
	}
	return models.Window{}, errors.Wrapf(ErrUnknownWindow, "%q", name)
}

// ParseGranularity пустое значение означает помесячную группировку
func ParseGranularity(name string) (models.Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "daily", "day":
		return models.Daily, nil
	case "weekly", "week":
		return models.Weekly, nil
	case "", "monthly", "month":
		return models.Monthly, nil
	case "yearly", "year":
		return models.Yearly, nil
	}
	return "", errors.Errorf("unknown granularity %q", name)
}

// FilterLeads свободный поиск, подстрока статуса и диапазон дат
func FilterLeads(leads []models.LeadRecord, f models.LeadFilter) []models.LeadRecord {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if query == "" && status == "" && f.From.IsZero() && f.To.IsZero() {
		return leads
	}

	result := make([]models.LeadRecord, 0, len(leads))
	for _, lead := range leads {
		if status != "" && !strings.Contains(strings.ToLower(lead.Status), status) {
			continue
		}
		if !f.From.IsZero() && lead.ParsedDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && lead.ParsedDate.After(f.To) {
			continue
		}
		if query != "" && !matchesQuery(lead, query) {
			continue
		}
		result = append(result, lead)
	}
	return result
}

func matchesQuery(lead models.LeadRecord, query string) bool {
	for _, field := range []string{lead.Name, lead.Phone, lead.Email, lead.City, lead.AssigneeName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
