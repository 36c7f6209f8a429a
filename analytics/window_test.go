package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

var (
	testCalendar = Calendar{Location: time.UTC, WeekStart: time.Monday}
	// четверг
	testNow = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
)

func leadAt(date time.Time) models.LeadRecord {
	return models.LeadRecord{CreatedOn: date.Format(time.RFC3339), ParsedDate: date}
}

func dates(leads []models.LeadRecord) []time.Time {
	result := make([]time.Time, 0, len(leads))
	for _, l := range leads {
		result = append(result, l.ParsedDate)
	}
	return result
}

func TestFilterByWindowAt(t *testing.T) {
	sunBefore := time.Date(2025, 5, 11, 23, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	weekAgo := time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC)
	morning := time.Date(2025, 5, 15, 8, 0, 0, 0, time.UTC)
	later := time.Date(2025, 5, 15, 13, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 5, 18, 23, 0, 0, 0, time.UTC)
	firstMay := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	january := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	all := []time.Time{sunBefore, monday, weekAgo, morning, later, sunday, firstMay, april, january, lastYear}
	leads := make([]models.LeadRecord, 0, len(all))
	for _, d := range all {
		leads = append(leads, leadAt(d))
	}

	tests := []struct {
		kind models.WindowKind
		want []time.Time
	}{
		{models.WindowToday, []time.Time{morning, later}},
		{models.WindowThisWeek, []time.Time{monday, morning, later, sunday}},
		{models.WindowLast7Days, []time.Time{sunBefore, monday, weekAgo, morning}},
		{models.WindowThisMonth, []time.Time{sunBefore, monday, weekAgo, morning, later, sunday, firstMay}},
		{models.WindowThisYear, []time.Time{sunBefore, monday, weekAgo, morning, later, sunday, firstMay, april, january}},
		{models.WindowLast30Days, []time.Time{sunBefore, monday, weekAgo, morning, firstMay, april}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := FilterByWindowAt(leads, models.Window{Kind: tt.kind}, testNow, testCalendar)
			assert.Equal(t, tt.want, dates(got))

			again := FilterByWindowAt(leads, models.Window{Kind: tt.kind}, testNow, testCalendar)
			assert.Equal(t, got, again)
			assert.Subset(t, leads, got)
		})
	}
}

func TestFilterByWindowAllTimeIsIdentity(t *testing.T) {
	leads := []models.LeadRecord{leadAt(testNow), leadAt(testNow.AddDate(-3, 0, 0))}
	got := FilterByWindowAt(leads, models.Window{Kind: models.WindowAllTime}, testNow, testCalendar)
	require.Len(t, got, 2)
	assert.Same(t, &leads[0], &got[0])
}

func TestFilterByWindowCustomInclusive(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	leads := []models.LeadRecord{leadAt(start), leadAt(end), leadAt(end.Add(time.Second)), leadAt(start.Add(-time.Second))}

	got := FilterByWindowAt(leads, models.Window{Kind: models.WindowCustom, Start: start, End: end}, testNow, testCalendar)
	assert.Equal(t, []time.Time{start, end}, dates(got))
}

func TestWeekStartIsConfigurable(t *testing.T) {
	sunday := Calendar{Location: time.UTC, WeekStart: time.Sunday}
	start, end, ok := sunday.Bounds(models.Window{Kind: models.WindowThisWeek}, testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestPreviousWindow(t *testing.T) {
	tests := []struct {
		kind      models.WindowKind
		wantStart time.Time
		wantEnd   time.Time
	}{
		{models.WindowToday, time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{models.WindowThisWeek, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{models.WindowThisMonth, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{models.WindowThisYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{models.WindowLast7Days, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			prev, ok := testCalendar.PreviousWindow(models.Window{Kind: tt.kind}, testNow)
			require.True(t, ok)
			assert.Equal(t, models.WindowCustom, prev.Kind)
			assert.True(t, tt.wantStart.Equal(prev.Start), "start %v", prev.Start)
			assert.True(t, tt.wantEnd.Equal(prev.End), "end %v", prev.End)
		})
	}

	_, ok := testCalendar.PreviousWindow(models.Window{Kind: models.WindowAllTime}, testNow)
	assert.False(t, ok)
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name string
		want models.WindowKind
	}{
		{"", models.WindowAllTime},
		{"all", models.WindowAllTime},
		{"7d", models.WindowLast7Days},
		{"last_30_days", models.WindowLast30Days},
		{"Month", models.WindowThisMonth},
		{"week", models.WindowThisWeek},
		{"today", models.WindowToday},
		{"this_year", models.WindowThisYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWindow(tt.name, "", "", time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Kind)
		})
	}

	w, err := ParseWindow("custom", "2025-03-31", "2025-03-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, 31, w.End.Day())
	assert.Equal(t, 23, w.End.Hour())

	_, err = ParseWindow("custom", "yesterday", "", time.UTC)
	assert.Error(t, err)

	_, err = ParseWindow("fortnight", "", "", time.UTC)
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, models.Monthly, g)

	g, err = ParseGranularity("Weekly")
	require.NoError(t, err)
	assert.Equal(t, models.Weekly, g)

	_, err = ParseGranularity("hourly")
	assert.Error(t, err)
}

func TestFilterLeads(t *testing.T) {
	leads := []models.LeadRecord{
		{Name: "Ravi Kumar", City: "Mumbai", Status: "Lost - Budget", ParsedDate: testNow},
		{Name: "Asha", Email: "asha@example.com", Status: "Fresh", ParsedDate: testNow.AddDate(0, -2, 0)},
		{Name: "Neha", AssigneeName: "Priya", Status: "fresh lead", ParsedDate: testNow.AddDate(0, 0, -1)},
	}

	assert.Len(t, FilterLeads(leads, models.LeadFilter{}), 3)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{Query: "MUMBAI"}), 1)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{Query: "example.com"}), 1)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{Query: "priya"}), 1)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{Status: "FRESH"}), 2)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{From: testNow.AddDate(0, 0, -7)}), 2)
	assert.Len(t, FilterLeads(leads, models.LeadFilter{Status: "fresh", To: testNow.AddDate(0, -1, 0)}), 1)
}
