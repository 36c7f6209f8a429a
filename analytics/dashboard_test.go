package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

func TestBuildDashboardWithoutSnapshot(t *testing.T) {
	d := BuildDashboard(nil, DashboardQuery{}, testNow, testCalendar)

	assert.Equal(t, models.WindowAllTime, d.Window)
	assert.Equal(t, models.Monthly, d.Granularity)
	assert.Equal(t, 0, d.TotalLeads)
	assert.NotNil(t, d.Status)
	assert.NotNil(t, d.Assignees)
	assert.NotNil(t, d.Cities)
	assert.NotNil(t, d.LossReasons)
	assert.NotNil(t, d.Timeline)
	assert.NotNil(t, d.Counselors)
	require.Len(t, d.Scorecards, 5)
	for _, c := range d.Scorecards {
		assert.Equal(t, models.StatNoData, c.State)
	}
}

func TestBuildDashboardWindowAndFilter(t *testing.T) {
	result, err := ParseLeads(sampleCSV, time.UTC)
	require.NoError(t, err)
	snapshot := NewSnapshot("leads.csv", result)

	d := BuildDashboard(snapshot, DashboardQuery{
		Window:      models.Window{Kind: models.WindowThisMonth},
		Granularity: models.Daily,
	}, testNow, testCalendar)

	assert.Equal(t, snapshot.ID, d.SnapshotID)
	assert.Equal(t, "leads.csv", d.FileName)
	assert.Equal(t, 2, d.TotalLeads)
	assert.Equal(t, 2, d.WindowLeads)
	assert.Equal(t, []models.CategoryCount{{Name: "Budget constraints", Value: 1, Percentage: 100}}, d.LossReasons)
	assert.Equal(t, []models.CategoryCount{{Name: "Priya Sharma", Value: 1, Percentage: 100}}, d.LostByCounsel)
	assert.Equal(t, []models.TimeBucketCount{
		{Name: "1 May", Key: "2025-05-01", Value: 1},
		{Name: "15 May", Key: "2025-05-15", Value: 1},
	}, d.Timeline)

	filtered := BuildDashboard(snapshot, DashboardQuery{Filter: models.LeadFilter{Query: "delhi"}}, testNow, testCalendar)
	assert.Equal(t, 2, filtered.TotalLeads)
	assert.Equal(t, 1, filtered.WindowLeads)
	assert.Equal(t, []models.CategoryCount{{Name: "Alex Thompson", Value: 1, Percentage: 100}}, filtered.Assignees)
	assert.Equal(t, 1, filtered.Scorecards[0].Value)
}
