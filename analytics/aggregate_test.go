package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

func withAssignees(names ...string) []models.LeadRecord {
	leads := make([]models.LeadRecord, 0, len(names))
	for _, n := range names {
		leads = append(leads, models.LeadRecord{AssigneeName: n, ParsedDate: testNow})
	}
	return leads
}

func sumValues(counts []models.CategoryCount) int {
	total := 0
	for _, c := range counts {
		total += c.Value
	}
	return total
}

func TestByAssigneeGroupsUnassigned(t *testing.T) {
	leads := withAssignees("Priya", "", "Priya", "  ", "Alex")
	got := ByAssignee(leads, 0)

	assert.Equal(t, []models.CategoryCount{
		{Name: "Priya", Value: 2, Percentage: 40},
		{Name: "Unassigned", Value: 2, Percentage: 40},
		{Name: "Alex", Value: 1, Percentage: 20},
	}, got)
	for _, c := range got {
		assert.NotEmpty(t, c.Name)
	}
}

func TestAggregateByTotalsAndPercentages(t *testing.T) {
	leads := withAssignees("A", "B", "C", "A", "D", "A", "C", "E", "F", "G", "A")
	got := ByAssignee(leads, 0)

	assert.Equal(t, len(leads), sumValues(got))
	percentTotal := 0
	for _, c := range got {
		assert.GreaterOrEqual(t, c.Percentage, 0)
		assert.LessOrEqual(t, c.Percentage, 100)
		percentTotal += c.Percentage
	}
	assert.Contains(t, []int{99, 100, 101}, percentTotal)
}

func TestAggregateBySortOrderAndLimit(t *testing.T) {
	leads := withAssignees("A", "A", "A", "A", "A", "B", "C", "C", "C")
	key := func(l models.LeadRecord) string { return l.AssigneeName }

	desc := AggregateBy(leads, key, AggregateOptions{Order: Descending, Limit: 2})
	assert.Equal(t, []models.CategoryCount{
		{Name: "A", Value: 5, Percentage: 56},
		{Name: "C", Value: 3, Percentage: 33},
	}, desc)

	asc := AggregateBy(leads, key, AggregateOptions{Order: Ascending, Limit: 2})
	assert.Equal(t, []models.CategoryCount{
		{Name: "C", Value: 3, Percentage: 33},
		{Name: "A", Value: 5, Percentage: 56},
	}, asc)

	full := AggregateBy(leads, key, AggregateOptions{Order: Ascending})
	require.Len(t, full, 3)
	assert.Equal(t, "B", full[0].Name)
}

func TestAggregateByFilterAndExclude(t *testing.T) {
	leads := withAssignees("A", "B", "skip", "A")
	got := AggregateBy(leads, func(l models.LeadRecord) string { return l.AssigneeName }, AggregateOptions{
		Filter:  func(l models.LeadRecord) bool { return l.AssigneeName != "B" },
		Exclude: func(key string) bool { return key == "skip" },
	})
	assert.Equal(t, []models.CategoryCount{{Name: "A", Value: 2, Percentage: 100}}, got)
}

func TestAggregateByEmptyInput(t *testing.T) {
	got := ByStatus(nil, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ByLossReason([]models.LeadRecord{}, 5))
}

func TestByLossReasonSingleLostLead(t *testing.T) {
	leads := []models.LeadRecord{{Status: "Lost - Budget", LostReason: "Budget constraints", ParsedDate: testNow}}
	assert.Equal(t, []models.CategoryCount{{Name: "Budget constraints", Value: 1, Percentage: 100}}, ByLossReason(leads, 5))
}

func TestByLossReasonOnlyLostAndKnownReasons(t *testing.T) {
	leads := []models.LeadRecord{
		{Status: "Lost", LostReason: "Found another agency"},
		{Status: "LOST - no response", LostReason: "NA"},
		{Status: "lost", LostReason: "unknown"},
		{Status: "Lost", LostReason: ""},
		{Status: "Fresh", LostReason: "Found another agency"},
		{Status: "Lost", LostReason: "Found another agency"},
	}
	assert.Equal(t, []models.CategoryCount{{Name: "Found another agency", Value: 2, Percentage: 100}}, ByLossReason(leads, 5))
	assert.Equal(t, []models.CategoryCount{{Name: "Unassigned", Value: 5, Percentage: 100}}, LostByAssignee(leads, 0))
}

func TestByCityNormalizes(t *testing.T) {
	leads := []models.LeadRecord{{City: " mumbai"}, {City: "Mumbai"}, {City: "unknown"}, {City: ""}, {City: "PUNE"}, {City: "new  delhi"}}
	assert.Equal(t, []models.CategoryCount{
		{Name: "Mumbai", Value: 2, Percentage: 50},
		{Name: "Pune", Value: 1, Percentage: 25},
		{Name: "New Delhi", Value: 1, Percentage: 25},
	}, ByCity(leads, 8))
}

func TestByAdAndCampaignExcludePlaceholders(t *testing.T) {
	leads := []models.LeadRecord{
		{FacebookAd: "Canada Reel", FacebookCampaign: "Intake 2025"},
		{FacebookAd: "NA", FacebookCampaign: "Intake 2025"},
		{FacebookAd: "Canada Reel", FacebookCampaign: "unknown"},
		{FacebookAd: "UK Carousel", FacebookCampaign: ""},
	}
	assert.Equal(t, []models.CategoryCount{
		{Name: "Canada Reel", Value: 2, Percentage: 67},
		{Name: "UK Carousel", Value: 1, Percentage: 33},
	}, ByAd(leads, 7))
	assert.Equal(t, []models.CategoryCount{{Name: "Intake 2025", Value: 2, Percentage: 100}}, ByCampaign(leads, 6))
}

func TestNormalizePreference(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"B.Tech Engineering", "Engineering Programs"},
		{"MBA_management", "Management Programs"},
		{" healthcare_admin ", "Healthcare Programs"},
		{"international_business", "Business Programs"},
		{"Computer Applications", "Computer Science/IT"},
		{"it_diploma", "Computer Science/IT"},
		{"digital_marketing", "Computer Science/IT"},
		{"data_analytics", "Data Analytics"},
		{"study_in_canada", "Study In Canada"},
		{"other_program", ""},
		{"Other", ""},
		{"NA", ""},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePreference(tt.input))
		})
	}
}

func TestByPreferenceSkipsPlaceholders(t *testing.T) {
	leads := []models.LeadRecord{
		{StudentPreference: "engineering"}, {StudentPreference: "mechanical_engineering"},
		{StudentPreference: "other"}, {StudentPreference: ""}, {StudentPreference: "nursing"},
	}
	assert.Equal(t, []models.CategoryCount{
		{Name: "Engineering Programs", Value: 2, Percentage: 67},
		{Name: "Nursing", Value: 1, Percentage: 33},
	}, ByPreference(leads, 6))
}

func TestClassifyStage(t *testing.T) {
	set := ClassifyStage("Docs Received, Application Filed")
	assert.True(t, set.Has(models.StageDocsReceived))
	assert.True(t, set.Has(models.StageApplicationFiled))
	assert.False(t, set.Has(models.StageLost))
	assert.False(t, set.IsConverted())
	assert.Equal(t, []models.StageTag{models.StageDocsReceived, models.StageApplicationFiled}, set.Tags())

	assert.True(t, ClassifyStage("LOST - Budget").Has(models.StageLost))
	assert.True(t, ClassifyStage("Registered To University").IsConverted())
	assert.True(t, ClassifyStage("enrolled").IsConverted())
	assert.Empty(t, ClassifyStage("").Tags())
	assert.Equal(t, "Docs Received", StageLabel(models.StageDocsReceived))
}

func TestAssigneeFunnel(t *testing.T) {
	leads := []models.LeadRecord{
		{AssigneeName: "Priya", Status: "Docs Received, Application Filed"},
		{AssigneeName: "Priya", Status: "Registered to University"},
		{AssigneeName: "Priya", Status: "Lost"},
		{AssigneeName: "Priya", Status: "Enrolled - deposit paid"},
		{AssigneeName: "Alex", Status: "Fresh"},
	}

	report := AssigneeFunnel(leads, "priya")
	assert.Equal(t, "Priya", report.Assignee)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Converted)
	assert.Equal(t, 50, report.ConversionRate)

	stages := map[string]int{}
	for _, s := range report.Stages {
		stages[s.Name] = s.Value
	}
	assert.Equal(t, map[string]int{
		"Fresh":                    0,
		"Lost":                     1,
		"Docs Received":            1,
		"Application Filed":        1,
		"Deposit":                  1,
		"Registered to University": 1,
		"Enrolled":                 1,
	}, stages)
}

func TestAssigneeFunnelUnknownAssignee(t *testing.T) {
	report := AssigneeFunnel(withAssignees("Priya"), "Nobody")
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.ConversionRate)
	assert.Len(t, report.Stages, 7)

	unassigned := AssigneeFunnel(withAssignees("", "Priya"), "")
	assert.Equal(t, "Unassigned", unassigned.Assignee)
	assert.Equal(t, 1, unassigned.Total)
}

func TestCounselorPerformance(t *testing.T) {
	leads := []models.LeadRecord{
		{AssigneeName: "Priya", Status: "Enrolled"},
		{AssigneeName: "Priya", Status: "Lost"},
		{AssigneeName: "Alex", Status: "Registered to University"},
	}
	reports := CounselorPerformance(leads, 10)
	require.Len(t, reports, 2)
	assert.Equal(t, "Priya", reports[0].Assignee)
	assert.Equal(t, 50, reports[0].ConversionRate)
	assert.Equal(t, "Alex", reports[1].Assignee)
	assert.Equal(t, 100, reports[1].ConversionRate)
}
